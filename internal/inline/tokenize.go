package inline

// Stage is one pass of the tokenizer pipeline
type Stage func([]Token) ([]Token, error)

// Delimiters used by the default pipeline
const (
	BoldDelimiter   = "**"
	ItalicDelimiter = "_"
	CodeDelimiter   = "`"
)

func delimiterStage(delim string, kind Kind) Stage {
	return func(tokens []Token) ([]Token, error) {
		return SplitDelimiter(tokens, delim, kind)
	}
}

// Pipeline is the fixed stage order used by Tokenize.
// Bold runs before italic and images before links.
var Pipeline = []Stage{
	delimiterStage(BoldDelimiter, Bold),
	delimiterStage(ItalicDelimiter, Italic),
	delimiterStage(CodeDelimiter, Code),
	SplitImages,
	SplitLinks,
}

// Tokenize converts raw text into typed tokens
func Tokenize(text string) ([]Token, error) {
	return Run(text, Pipeline...)
}

// Run feeds a single plain token through the given stages in order
func Run(text string, stages ...Stage) ([]Token, error) {
	tokens := []Token{NewToken(text, Plain)}
	for _, stage := range stages {
		var err error
		tokens, err = stage(tokens)
		if err != nil {
			return nil, err
		}
	}
	return tokens, nil
}
