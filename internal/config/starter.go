package config

// Starter is the configuration written by `folio config init`.
const Starter = `# folio repository configuration
publication:
  author: Your Name
  copyright: "© Your Name. All rights reserved."
  site: https://example.com

content:
  base_dir: content
  topics:
    blog:
      name: Blog
      description: Long-form articles
      directory: blog
    notes:
      name: Notes
      description: Short notes and links
      directory: notes
  tags:
    blog: [go, tooling]

images:
  formats: [jpg, webp]
  format_descriptions:
    jpg: Baseline JPEG for maximum compatibility
    webp: WebP for modern browsers
  sizes:
    thumbnail:
      width_px: 480
      height_px: 320
      description: Small image
    large:
      width_px: 1600
      height_px: 1067
      description: Full-width image
  naming:
    pattern: "{name}-{size}.{format}"
  quality:
    jpg:
      thumbnail: 80
      large: 85
    webp:
      thumbnail: 75
      large: 82
`
