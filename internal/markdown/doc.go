// Package markdown turns Markdown files into documents: it splits the
// frontmatter block from the body, renders the body to HTML with goldmark,
// estimates reading time, and discovers publishable files on disk.
package markdown
