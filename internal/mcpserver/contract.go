package mcpserver

// ArticleFormat describes the Markdown layout the knowledge loader reads.
const ArticleFormat = `# chihom Article Format

Each article is one UTF-8 Markdown file in the knowledge vault.

## Structure

` + "```" + `markdown
---
title: Redis 缓存策略
slug: redis-caching
description: One sentence shown in listings
category: 后端
tags: Redis, 缓存, 性能优化
date: 2024-01-15
---

Body text in standard Markdown.
` + "```" + `

## Rules

1. The header starts at the very first byte with a line holding only ` + "`---`" + `
   and ends at the next such line. Anything else is treated as body.
2. Each header line is ` + "`key: value`" + `. The first colon splits key from value,
   so values may contain colons. Lines without a colon are ignored.
3. Values are plain strings. Lists and nested objects are not supported.
4. ` + "`tags`" + ` is a comma separated list. Empty entries are dropped.
5. Every field is optional:
   - ` + "`title`" + ` defaults to the file name without its extension.
   - ` + "`slug`" + ` defaults to the title lowercased with punctuation removed and
     spaces collapsed to hyphens. Non-Latin titles should set it explicitly.
   - ` + "`category`" + ` defaults to ` + "`未分类`" + `.
   - ` + "`date`" + ` defaults to the day the file was loaded (YYYY-MM-DD, UTC).
6. The article id is the file path relative to the vault without ` + "`.md`" + `.
7. A header with no fields, or a file with nothing after the header, is read
   as plain body text.
`
