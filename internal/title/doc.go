// Package title turns raw group labels into human-meaningful ones and
// derives a page-level suggested title.
//
// Labels come from heading text, container headings or URL paths. Many of
// them carry no information ("More", "zwgk", the site's own name, a
// breadcrumb trail). The Inferrer rejects those and re-derives a label from
// the titles of the group's articles.
package title
