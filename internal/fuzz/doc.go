// Package fuzztests houses Go fuzz harnesses for the analysis pipeline
// (lexer -> parser -> scopes -> flow -> complexity -> checks). The stages
// are called directly, without the driver's recover, so any panic on
// arbitrary input fails the harness.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
