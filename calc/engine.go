package calc

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Mode selects how the engine treats stray characters, unbalanced
// parentheses and division by zero.
type Mode int

const (
	// ModeStrict rejects unknown characters, unbalanced parentheses and
	// division by zero.
	ModeStrict Mode = iota
	// ModeLenient drops unknown characters, ignores unmatched parentheses and
	// lets division by zero produce ±Inf or NaN.
	ModeLenient
)

func (m Mode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModeLenient:
		return "lenient"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a mode name as used in config files and flags.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "strict":
		return ModeStrict, nil
	case "lenient":
		return ModeLenient, nil
	default:
		return ModeStrict, fmt.Errorf("unknown mode %q (want strict or lenient)", name)
	}
}

const defaultMaxTokens = 4096

// Config controls engine behaviour.
type Config struct {
	Mode      Mode
	MaxTokens int
	Logger    *zap.Logger
}

// Engine evaluates arithmetic expressions. An Engine is immutable once built
// and safe for concurrent use.
type Engine struct {
	config Config
	log    *zap.Logger
}

// NewEngine validates cfg and fills in defaults.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Mode != ModeStrict && cfg.Mode != ModeLenient {
		return nil, fmt.Errorf("calc: invalid mode %s", cfg.Mode)
	}
	if cfg.MaxTokens < 0 {
		return nil, fmt.Errorf("calc: max tokens must be non-negative, got %d", cfg.MaxTokens)
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{config: cfg, log: log.Named("calc")}, nil
}

// MustNewEngine constructs an Engine or panics if the config is invalid.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

var defaultEngine = MustNewEngine(Config{})

// Calculate evaluates expr with a strict engine using default limits.
func Calculate(expr string) (float64, error) {
	return defaultEngine.Calculate(expr)
}

// Mode reports the engine's input policy.
func (e *Engine) Mode() Mode {
	return e.config.Mode
}

func (e *Engine) strict() bool {
	return e.config.Mode == ModeStrict
}

// Tokenize splits expr into number and operator tokens. Input without any
// recognisable token yields an empty slice.
func (e *Engine) Tokenize(expr string) ([]Token, error) {
	l := newLexer(expr, e.strict())
	tokens := make([]Token, 0, len(expr)/2+1)
	for {
		tok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == tokenEOF {
			return tokens, nil
		}
		if len(tokens) == e.config.MaxTokens {
			return nil, newError(ErrExpressionTooLong, tok.Pos, expr,
				fmt.Sprintf("expression exceeds %d tokens", e.config.MaxTokens))
		}
		tokens = append(tokens, tok)
	}
}

// ToPostfix converts infix tokens to postfix order.
func (e *Engine) ToPostfix(tokens []Token) ([]Token, error) {
	return toPostfix(tokens, e.strict())
}

// Evaluate runs a postfix token sequence and returns the single value left
// on the stack.
func (e *Engine) Evaluate(postfix []Token) (float64, error) {
	return evaluatePostfix(postfix, e.strict())
}

// Compile tokenizes and converts expr so it can be evaluated repeatedly.
func (e *Engine) Compile(expr string) (*Program, error) {
	tokens, err := e.Tokenize(expr)
	if err != nil {
		return nil, e.fail(expr, err)
	}
	if len(tokens) == 0 {
		return nil, e.fail(expr, newError(ErrEmptyExpression, Position{}, expr, "nothing to evaluate"))
	}
	postfix, err := e.ToPostfix(tokens)
	if err != nil {
		return nil, e.fail(expr, err)
	}
	return &Program{engine: e, source: expr, postfix: postfix}, nil
}

// Calculate evaluates expr.
func (e *Engine) Calculate(expr string) (float64, error) {
	program, err := e.Compile(expr)
	if err != nil {
		return 0, err
	}
	return program.Eval()
}

func (e *Engine) fail(expr string, err error) error {
	var calcErr *Error
	if errors.As(err, &calcErr) {
		calcErr.withSource(expr)
	}
	e.log.Debug("expression failed",
		zap.String("expr", expr),
		zap.Stringer("mode", e.config.Mode),
		zap.Error(err),
	)
	return err
}
