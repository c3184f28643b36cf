// Package posts turns parsed frontmatter into the validated post record and
// the flat payload accepted by the blog API.
package posts
