package cmdlinegen

import (
	"fmt"
	"strings"
	"unicode"
)

const parseFnParams = "void *parsed_result, struct cmdline *cl, void *data"

// parseFnUnused are the handler parameters the stub marks as used so
// it compiles cleanly with -Wunused-parameter
var parseFnUnused = []string{"parsed_result", "cl", "data"}

// headerIncludes are the cmdline library headers every generated
// header needs
var headerIncludes = []string{
	"rte_common.h",
	"cmdline.h",
	"cmdline_parse_string.h",
	"cmdline_parse_num.h",
	"cmdline_parse_ipaddr.h",
}

func handlerName(cmd *Command) string {
	return fmt.Sprintf("cmd_%s_parsed", cmd.Name)
}

func resultName(cmd *Command) string {
	return fmt.Sprintf("cmd_%s_result", cmd.Name)
}

func instanceName(cmd *Command) string {
	return fmt.Sprintf("cmd_%s", cmd.Name)
}

// renderCommand emits every header declaration of `cmd`: handler
// prototype, result struct, token descriptors and the instance.
func renderCommand(cmd *Command) string {
	out := newOutputWriter("\t")

	out.writel(fmt.Sprintf("/* Auto-generated handling for command \"%s\" */", cmd.Text))

	out.writel("extern void")
	out.writel(fmt.Sprintf("%s(%s);", handlerName(cmd), parseFnParams))
	out.writel("")

	out.writel(fmt.Sprintf("struct %s {", resultName(cmd)))
	out.indent()
	for _, f := range cmd.Fields {
		out.writeil(fmt.Sprintf("%s %s;", f.Type.info().storage, f.Name))
	}
	out.unindent()
	out.writel("};")
	out.writel("")

	for _, f := range cmd.Fields {
		info := f.Type.info()
		out.writel(fmt.Sprintf("static %s %s =", info.token, f.Token))
		out.indent()
		out.writeil(fieldInitializer(cmd, f))
		out.unindent()
	}
	out.writel("")

	out.writel(fmt.Sprintf("static cmdline_parse_inst_t %s = {", instanceName(cmd)))
	out.indent()
	out.writeil(fmt.Sprintf(".f = %s,", handlerName(cmd)))
	out.writeil(".data = NULL,")
	out.writeil(fmt.Sprintf(".help_str = %s,", cStringLiteral(cmd.Help)))
	out.writeil(".tokens = {")
	out.indent()
	for _, f := range cmd.Fields {
		out.writeil(fmt.Sprintf("(void *)&%s,", f.Token))
	}
	out.writeil("NULL,")
	out.unindent()
	out.writeil("}")
	out.unindent()
	out.writel("};")

	return out.String()
}

// fieldInitializer is the macro call that builds the token descriptor
// of `f`
func fieldInitializer(cmd *Command, f Field) string {
	info := f.Type.info()
	switch {
	case f.Type == TypeString || f.Type == TypeChoice:
		return fmt.Sprintf("%s(struct %s, %s, %s);", info.macro, resultName(cmd), f.Name, f.Default)
	case f.Type.IsNumeric():
		return fmt.Sprintf("%s(struct %s, %s, %s);", info.macro, resultName(cmd), f.Name, info.numTag)
	default:
		return fmt.Sprintf("%s(struct %s, %s);", info.macro, resultName(cmd), f.Name)
	}
}

// renderStub emits an empty handler for `cmd`
func renderStub(cmd *Command) string {
	out := newOutputWriter("    ")
	out.writel("void")
	out.writel(fmt.Sprintf("%s(%s)", handlerName(cmd), parseFnParams))
	out.writel("{")
	out.indent()
	out.writeil("/* TODO: command action */")
	for _, p := range parseFnUnused {
		out.writeil(fmt.Sprintf("RTE_SET_USED(%s);", p))
	}
	out.unindent()
	out.writel("}")
	return out.String()
}

// renderPreamble opens the header guard and pulls in the library
// headers
func renderPreamble(banner, guard string) string {
	out := newOutputWriter("\t")
	out.writel(fmt.Sprintf("/* File autogenerated by %s */", banner))
	out.writel(fmt.Sprintf("#ifndef %s", guard))
	out.writel(fmt.Sprintf("#define %s", guard))
	for _, inc := range headerIncludes {
		out.writel(fmt.Sprintf("#include <%s>", inc))
	}
	out.writel("")
	return out.String()
}

// renderPostamble emits the context table with every instance in
// `instances` and closes the header guard
func renderPostamble(ctxName, guard string, instances []string) string {
	out := newOutputWriter("\t")
	out.writel("")
	out.writel(fmt.Sprintf("static __rte_used cmdline_parse_ctx_t %s[] = {", ctxName))
	out.indent()
	for _, inst := range instances {
		out.writeil(fmt.Sprintf("&%s,", inst))
	}
	out.writeil("NULL")
	out.unindent()
	out.writel("};")
	out.writel("")
	out.writel(fmt.Sprintf("#endif /* %s */", guard))
	return out.String()
}

// renderStubPreamble makes the stub file include the generated
// header
func renderStubPreamble(header string) string {
	return fmt.Sprintf("#include %s\n\n", cStringLiteral(header))
}

var cStringSanitizer = strings.NewReplacer(
	`"`, `\"`,
	`\`, `\\`,
	string('\n'), `\n`,
	string('\r'), `\r`,
	string('\t'), `\t`,
)

// cStringLiteral quotes `s` as a C string literal
func cStringLiteral(s string) string {
	return `"` + cStringSanitizer.Replace(s) + `"`
}

// sanitizeCIdent converts an arbitrary string into a safe C identifier.
// Keeps letters, digits and '_'; replaces everything else with '_'.
// Ensures it doesn't start with a digit.
func sanitizeCIdent(s string) string {
	if s == "" {
		return "X"
	}
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		if i == 0 && unicode.IsDigit(r) {
			b.WriteRune('_')
		}
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
