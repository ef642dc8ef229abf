package cmdlinegen

import (
	"fmt"
	"strconv"

	"github.com/clarete/cmdlinegen/ascii"
)

type CmdFormatToken int

const (
	CmdFormatToken_Operator CmdFormatToken = iota
	CmdFormatToken_Operand
	CmdFormatToken_Literal
	CmdFormatToken_Comment
)

// FormatCommands renders `cmds` as a plain tree
func FormatCommands(cmds []*Command) string {
	return ppCommands(cmds, func(input string, _ CmdFormatToken) string {
		return input
	})
}

// HighlightCommands renders `cmds` as a tree colored with `theme`
func HighlightCommands(cmds []*Command, theme ascii.Theme) string {
	styles := map[CmdFormatToken]func(...string) string{
		CmdFormatToken_Operator: theme.Operator.Render,
		CmdFormatToken_Operand:  theme.Operand.Render,
		CmdFormatToken_Literal:  theme.Literal.Render,
		CmdFormatToken_Comment:  theme.Comment.Render,
	}
	return ppCommands(cmds, func(input string, token CmdFormatToken) string {
		if render, ok := styles[token]; ok {
			return render(input)
		}
		return input
	})
}

func ppCommands(cmds []*Command, format FormatFunc[CmdFormatToken]) string {
	pp := &commandPrinter{newTreePrinter(format)}
	for _, cmd := range cmds {
		pp.printCommand(cmd)
	}
	return pp.output.String()
}

type commandPrinter struct {
	*treePrinter[CmdFormatToken]
}

func (pp *commandPrinter) printCommand(c *Command) {
	pp.write(pp.format("Command", CmdFormatToken_Operator))
	pp.write("[" + pp.format(c.Name, CmdFormatToken_Operand) + "]")
	pp.write(pp.format(fmt.Sprintf(" (line %d)", c.Line), CmdFormatToken_Comment))
	if c.Help != "" {
		pp.write(" " + pp.format(strconv.Quote(c.Help), CmdFormatToken_Literal))
	}
	pp.writel("")
	pp.children(len(c.Fields), func(i int) {
		pp.printField(c.Fields[i])
	})
}

func (pp *commandPrinter) printField(f Field) {
	pp.write(pp.format("Field", CmdFormatToken_Operator))
	pp.write("[" + pp.format(f.Name, CmdFormatToken_Operand) + "] ")
	pp.write(f.Type.String())
	if f.Default != "NULL" && (f.Type == TypeString || f.Type == TypeChoice) {
		pp.write(" " + pp.format(f.Default, CmdFormatToken_Literal))
	}
	pp.writel("")
}
