// Package language normalizes the language codes users type on the command
// line, in configuration, or in API requests into the codes the translation
// provider accepts.
//
// Codes are parsed as BCP 47 tags with golang.org/x/text/language. ISO 639-2
// codes and English word forms ("chinese", "fre") are accepted too. Chinese
// collapses to "zh" or "zh-Hant" by script; every other language collapses to
// its base subtag. The literal "auto" passes through for source detection.
package language
