package rendering

// Stylesheet styles the class names HTML emits. It is shared by the live preview
// and the HTML/PDF export so both look the same.
const Stylesheet = `
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #1f2937; margin: 0; }
.resume-content { max-width: 800px; margin: 0 auto; padding: 2rem; }
.resume-h1 { font-size: 1.8rem; font-weight: 700; text-align: center; margin: 0 0 1rem; }
.resume-h2 { font-size: 1.3rem; font-weight: 700; margin: 1.5rem 0 0.75rem; padding-bottom: 0.4rem; border-bottom: 2px solid #2563eb; }
.resume-h3 { font-size: 1.1rem; font-weight: 600; margin: 1rem 0 0.5rem; padding-bottom: 0.25rem; border-bottom: 1px solid #e5e7eb; }
.resume-h4, .resume-h5, .resume-h6 { font-size: 1rem; font-weight: 600; margin: 0.75rem 0 0.5rem; }
.resume-p { margin: 0 0 0.75rem; }
.resume-list { list-style: disc; padding-left: 1.5rem; margin: 0 0 0.75rem; }
.resume-list li { margin-bottom: 0.25rem; }
.resume-figure { text-align: center; margin: 1rem 0; }
.resume-photo { display: block; margin: 0 auto; max-width: 100%; max-height: 200px; width: auto; height: auto; border-radius: 0.5rem; }
.resume-inline-image { max-height: 1.5em; vertical-align: middle; }
.resume-rule { width: 100%; border: 0; border-top: 2px solid #d1d5db; margin: 1.25rem 0; }
.resume-code { font-family: ui-monospace, monospace; font-size: 0.9em; background: #eff6ff; color: #1e40af; padding: 0.1rem 0.3rem; border-radius: 0.25rem; }
.resume-link { color: #2563eb; text-decoration: underline; word-break: break-word; }
@page { margin: 0.75in; }
@media print { .resume-content { padding: 0; } }
`
