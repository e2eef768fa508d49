package script

import (
	"go.uber.org/zap"

	"mdrun/internal/document"
)

// MarkerClass identifies executable fragments among code nodes.
const MarkerClass = "run"

// Attribute values controlling the gate stage.
const (
	attrExec    = "exec"
	attrInclude = "include"
	// Only the literal string "false" disables; every other value, including
	// unrecognized ones, means execute.
	attrFalse = "false"
)

// OutcomeKind is the decision taken for one fragment. Exactly one results from
// processing a fragment.
type OutcomeKind int

const (
	// OutcomeUnchanged leaves the node exactly as authored, raw text included.
	OutcomeUnchanged OutcomeKind = iota
	// OutcomeRemoved deletes the node from the tree.
	OutcomeRemoved
	// OutcomeSubstituted replaces the node with the result nodes in order.
	OutcomeSubstituted
)

// BlockOutcome is the result of processing a block fragment.
type BlockOutcome struct {
	Kind  OutcomeKind
	Nodes []document.Block
}

// InlineOutcome is the result of processing an inline fragment.
type InlineOutcome struct {
	Kind  OutcomeKind
	Nodes []document.Inline
}

// Executor runs the classify, gate, parse, execute, validate pipeline for one
// fragment at a time. Every failure is recoverable at fragment granularity:
// it is logged as a warning and the fragment is left unchanged.
type Executor struct {
	env Evaluator
	loc *Locator
	log *zap.Logger
}

// NewExecutor wires an executor to the run's environment, locator and logger.
func NewExecutor(env Evaluator, loc *Locator, log *zap.Logger) *Executor {
	return &Executor{env: env, loc: loc, log: log}
}

// IsFragment reports whether a code node's classes mark it as executable.
func IsFragment(classes []string) bool {
	return document.HasClass(classes, MarkerClass)
}

// Block processes one block-level code node.
func (e *Executor) Block(cb *document.CodeBlock) BlockOutcome {
	if !IsFragment(cb.Classes) {
		return BlockOutcome{Kind: OutcomeUnchanged}
	}
	if cb.Attrs[attrExec] == attrFalse {
		// Disabled fragments are never parsed or run. With include=false the
		// block is dropped outright; otherwise it is shown as authored.
		if cb.Attrs[attrInclude] == attrFalse {
			return BlockOutcome{Kind: OutcomeRemoved}
		}
		return BlockOutcome{Kind: OutcomeUnchanged}
	}

	c, err := e.env.Compile(cb.Text, ModeStatements)
	if err != nil {
		e.warn("cannot parse fragment", "ParseError", LevelBlock, cb.Text, err)
		return BlockOutcome{Kind: OutcomeUnchanged}
	}
	rv, err := e.env.Invoke(c)
	if err != nil {
		e.warn("fragment execution failed", "ExecError", LevelBlock, cb.Text, err)
		return BlockOutcome{Kind: OutcomeUnchanged}
	}
	nodes, verr := NormalizeBlocks(rv)
	if verr != nil {
		e.warn("invalid fragment return value", "InvalidReturnValue", LevelBlock, cb.Text, verr)
		return BlockOutcome{Kind: OutcomeUnchanged}
	}
	if len(nodes) == 0 {
		return BlockOutcome{Kind: OutcomeRemoved}
	}
	return BlockOutcome{Kind: OutcomeSubstituted, Nodes: nodes}
}

// Inline processes one inline-level code node. The text is compiled as an
// implicit-result expression first and as a statement sequence on failure, so
// the common scalar-expression case needs no ceremony.
func (e *Executor) Inline(code *document.Code) InlineOutcome {
	if !IsFragment(code.Classes) {
		return InlineOutcome{Kind: OutcomeUnchanged}
	}
	if code.Attrs[attrExec] == attrFalse {
		return InlineOutcome{Kind: OutcomeUnchanged}
	}

	c, err := e.env.Compile(code.Text, ModeExpression)
	if err != nil {
		c, err = e.env.Compile(code.Text, ModeStatements)
	}
	if err != nil {
		e.warn("cannot parse fragment", "ParseError", LevelInline, code.Text, err)
		return InlineOutcome{Kind: OutcomeUnchanged}
	}
	rv, err := e.env.Invoke(c)
	if err != nil {
		e.warn("fragment execution failed", "ExecError", LevelInline, code.Text, err)
		return InlineOutcome{Kind: OutcomeUnchanged}
	}
	nodes, verr := NormalizeInlines(rv)
	if verr != nil {
		e.warn("invalid fragment return value", "InvalidReturnValue", LevelInline, code.Text, verr)
		return InlineOutcome{Kind: OutcomeUnchanged}
	}
	if len(nodes) == 0 {
		return InlineOutcome{Kind: OutcomeRemoved}
	}
	return InlineOutcome{Kind: OutcomeSubstituted, Nodes: nodes}
}

// warn logs a fragment failure with its kind, level and best-effort source
// position. The position lookup happens here, lazily: only failing fragments
// advance the locator cursor.
func (e *Executor) warn(msg, kind string, level Level, text string, err error) {
	pos := e.loc.Locate(text, level)
	fields := []zap.Field{
		zap.String("kind", kind),
		zap.String("level", level.String()),
		zap.String("position", pos.String()),
	}
	if pos.Known() {
		fields = append(fields, zap.Int("line", pos.Line))
		if pos.Col > 0 {
			fields = append(fields, zap.Int("column", pos.Col))
		}
	}
	fields = append(fields, zap.Error(err))
	e.log.Warn(msg, fields...)
}
