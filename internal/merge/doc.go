// Package merge defines how templates and per-language fragments combine.
//
// A template names sections with `<LanguageInclude section="name" />`. For
// every directive the Resolver looks the section up in each language's
// fragment file, and Render turns the outcomes into text: the target
// language's content alone in production, or every language wrapped in a
// `<Language>` container together with visible diagnostics in development.
//
// Finding directives is delegated to a Scanner. The textmerge backend scans
// lines; the astmerge backend is a goldmark extension. Merger drives either
// one through the same rendering, edit and import-injection steps, so both
// produce identical documents.
package merge
