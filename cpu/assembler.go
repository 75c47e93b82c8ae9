// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":        "0",
	"MEMORY_SIZE":   fmt.Sprintf("%v", MEMORY_SIZE),
	"ADDRESS_MASK":  fmt.Sprintf("%#v", ADDRESS_MASK),
	"SIGN_BIT":      fmt.Sprintf("%#v", SIGN_BIT),
	"FLAG_ZERO":     fmt.Sprintf("%#v", FLAG_ZERO),
	"FLAG_CARRY":    fmt.Sprintf("%#v", FLAG_CARRY),
	"FLAG_OVERFLOW": fmt.Sprintf("%#v", FLAG_OVERFLOW),
	"FLAG_NEGATIVE": fmt.Sprintf("%#v", FLAG_NEGATIVE),
}

// Assembler is a single pass macro assembler for the Blue computer.
type Assembler struct {
	Verbose    bool        // If set, verbosely logs the assembler actions.
	Statements []Statement // List of generated statements.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of jump labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	addr       int // Location counter.
	expansions int // Count of macro expansions.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// opMap maps mnemonics to opcodes.
var opMap = map[string]Opcode{
	"hlt": OP_HLT,
	"add": OP_ADD,
	"xor": OP_XOR,
	"and": OP_AND,
	"ior": OP_IOR,
	"not": OP_NOT,
	"lda": OP_LDA,
	"sta": OP_STA,
	"srj": OP_SRJ,
	"jma": OP_JMA,
	"jmp": OP_JMP,
	"inp": OP_INP,
	"out": OP_OUT,
	"ral": OP_RAL,
	"csa": OP_CSA,
	"nop": OP_NOP,
	"sub": OP_SUB,
	"cmp": OP_CMP,
}

var reLabel = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value Word, err error) {
	if len(word) == 0 {
		err = ErrParseNumber(word)
		return
	}

	invert := false
	if len(word) > 1 && word[0] == '~' {
		invert = true
		word = word[1:]
	}
	if word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(strings.Trim(word, "'"))
		return
	}
	v64, err := strconv.ParseInt(word, 0, 32)
	if err != nil || v64 > 0xffff || v64 < -0x8000 {
		err = ErrParseNumber(word)
		return
	}

	value = Word(v64)

	if invert {
		value = ^value
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value Word, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value16 Word
		value16, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(int(value16))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = Word(st_int64)
	return
}

// parseLine parses a single line into words, handling equates, labels
// and macro expansion.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if strings.ToLower(words[0]) == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.addr
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		// '@' is unique to each expansion.
		asm.expansions++
		mangle := fmt.Sprintf("%v_%v_", name, asm.expansions)

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", mangle)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Statements = asm.Statements[:0]
	asm.addr = 0
	asm.expansions = 0
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of jump labels.
	for n := range asm.Statements {
		st := &asm.Statements[n]

		if len(st.LinkLabel) == 0 {
			continue
		}
		line = strings.Join(st.Words, " ")
		lineno = st.LineNo

		label := st.LinkLabel
		addr, ok := asm.Label[label]
		if !ok {
			err = ErrLabelMissing(label)
			return
		}
		linked := &st.Codes[len(st.Codes)-1]
		op, _ := linked.Opcode()
		mask := op.OperandMask()
		if strings.ToLower(st.Words[0]) == ".word" {
			mask = 0xffff
		}
		if Word(addr)&^mask != 0 {
			err = ErrAddressRange
			return
		}
		*linked |= Code(addr)
	}

	prog = &Program{
		Statements: slices.Clone(asm.Statements),
	}

	return
}

// emit appends a statement at the location counter.
func (asm *Assembler) emit(lineno int, words []string, label string, codes ...Code) (err error) {
	if asm.addr+len(codes) > MEMORY_SIZE {
		err = ErrMemoryFull
		return
	}

	st := Statement{LineNo: lineno, Addr: asm.addr, Words: words, Codes: codes, LinkLabel: label}
	asm.Statements = append(asm.Statements, st)
	asm.addr += len(codes)

	return
}

// operand evaluates a word as a value, or as a label to be linked.
func (asm *Assembler) operand(word string) (value Word, label string, err error) {
	value, err = asm.valueOf(word)
	if err == nil {
		return
	}

	if reLabel.MatchString(word) {
		label = word
		err = nil
		return
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	mnemonic := strings.ToLower(words[0])
	args := words[1:]

	switch mnemonic {
	case ".org":
		if len(args) != 1 {
			err = ErrOrgSyntax
			return
		}
		var value Word
		value, err = asm.valueOf(args[0])
		if err != nil {
			return
		}
		if int(value) >= MEMORY_SIZE {
			err = ErrAddressRange
			return
		}
		asm.addr = int(value)
		return
	case ".word":
		if len(args) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(args) == 1 {
			value, label, _err := asm.operand(args[0])
			if _err != nil {
				err = _err
				return
			}
			return asm.emit(lineno, words, label, Code(value))
		}
		var codes []Code
		for _, arg := range args {
			var value Word
			value, err = asm.valueOf(arg)
			if err != nil {
				return
			}
			codes = append(codes, Code(value))
		}
		return asm.emit(lineno, words, "", codes...)
	}

	op, ok := opMap[mnemonic]
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	mask := op.OperandMask()
	if mask == 0 {
		if len(args) != 0 {
			err = ErrOpcodeExtraArgs
			return
		}
		return asm.emit(lineno, words, "", MakeCode(op, 0))
	}

	if len(args) == 0 {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > 1 {
		err = ErrOpcodeExtraArgs
		return
	}

	value, label, err := asm.operand(args[0])
	if err != nil {
		return
	}
	if value&^mask != 0 {
		err = ErrAddressRange
		return
	}

	return asm.emit(lineno, words, label, MakeCode(op, value))
}
