// Package md2pub converts Markdown documents into styled, self-contained
// HTML suitable for publishing surfaces that strip <style> blocks and
// ignore CSS custom properties (webmail, CMS editors, WeChat articles).
//
// The pipeline runs strictly downstream for one in-memory document:
// front-matter splitting, CJK-aware emphasis normalization, per-node
// rendering with custom semantics, post-processing (reading banner,
// footnotes, root container), theme CSS assembly, document building,
// CSS inlining, and custom-property normalization.
//
// Basic usage:
//
//	c, err := md2pub.NewConverter(md2pub.WithTheme("default"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	res, err := c.Convert(ctx, md2pub.Input{Markdown: content})
//
// A Converter is not safe for concurrent use on the same instance: it
// carries per-document render state and resets it between sequential
// conversions.
package md2pub
