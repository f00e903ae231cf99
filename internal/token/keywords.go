package token

var keywords = map[string]Kind{
	"struct":    KwStruct,
	"optional":  KwOptional,
	"mandatory": KwMandatory,
	"let":       KwLet,
	"new":       KwNew,
	"if":        KwIf,
	"else":      KwElse,
	"while":     KwWhile,
	"fn":        KwFn,
	"return":    KwReturn,
	"print":     KwPrint,
	"true":      KwTrue,
	"false":     KwFalse,
	"null":      NullLit,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые — только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
