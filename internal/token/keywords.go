package token

// Keywords lists the reserved words in the order the lexer alternates them.
var Keywords = []string{
	"int", "char", "float", "double", "void",
	"if", "else", "while", "for", "return", "printf",
}

// DeclarableTypes are the keywords that introduce a variable declaration.
var DeclarableTypes = map[string]bool{
	"int":    true,
	"char":   true,
	"float":  true,
	"double": true,
}

var keywordSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Keywords))
	for _, kw := range Keywords {
		m[kw] = struct{}{}
	}
	return m
}()

// IsKeyword reports whether word is reserved.
// Ключевые слова регистрозависимые — только lowercase версии распознаются.
func IsKeyword(word string) bool {
	_, ok := keywordSet[word]
	return ok
}
