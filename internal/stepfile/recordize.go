package stepfile

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/vk/brepstep/internal/ctxlog"
	"github.com/vk/brepstep/internal/record"
)

// representationItem is the generic supertype whose name slot trails the
// argument list of most complex instances.
const representationItem = "REPRESENTATION_ITEM"

// Reference is one raw cross-reference found in a record's arguments.
type Reference struct {
	From record.ID
	To   record.ID
}

// Result is the output of recordizing one file.
type Result struct {
	Table      *record.Table
	References []Reference
	// Statements counts the `#`-prefixed statements seen.
	Statements int
	// Malformed counts dropped statements, duplicates included.
	Malformed int
}

// ReadFile opens path and recordizes it. See Read.
func ReadFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open exchange file: %w", err)
	}
	defer f.Close()
	return Read(ctx, f)
}

// Read decodes r as ISO-8859-1 and recordizes it.
func Read(ctx context.Context, r io.Reader) (*Result, error) {
	return parse(ctx, charmap.ISO8859_1.NewDecoder().Reader(r))
}

// ParseString recordizes already-decoded text.
func ParseString(ctx context.Context, text string) (*Result, error) {
	return parse(ctx, strings.NewReader(text))
}

func parse(ctx context.Context, r io.Reader) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	statements, rest, err := splitStatements(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read exchange file: %w", err)
	}

	res := &Result{Table: record.NewTable()}
	for i, stmt := range statements {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if !strings.HasPrefix(stmt, "#") {
			continue
		}
		res.Statements++

		rec, err := parseStatement(stmt)
		if err != nil {
			res.Malformed++
			logger.Debug("Recordize: dropping malformed statement", "statement", abbreviate(stmt), "error", err)
			continue
		}
		if !res.Table.Add(rec) {
			res.Malformed++
			logger.Debug("Recordize: dropping duplicate record", "id", rec.ID.String())
			continue
		}
		for _, to := range rec.Refs() {
			res.References = append(res.References, Reference{From: rec.ID, To: to})
		}
	}
	if strings.HasPrefix(rest, "#") {
		res.Statements++
		res.Malformed++
		logger.Debug("Recordize: dropping unterminated statement", "statement", abbreviate(rest))
	}

	logger.Debug("Recordize: complete",
		"records", res.Table.Len(),
		"references", len(res.References),
		"malformed", res.Malformed)
	return res, nil
}

func parseStatement(stmt string) (*record.Record, error) {
	node, err := statementParser.ParseString("", stmt)
	if err != nil {
		return nil, err
	}
	id, err := record.ParseID(node.ID)
	if err != nil {
		return nil, err
	}

	rec := &record.Record{ID: id}
	if node.Simple != nil {
		rec.Types = []string{strings.ToUpper(node.Simple.Name)}
		if rec.Args, err = convertParams(node.Simple.Args); err != nil {
			return nil, err
		}
		return rec, nil
	}

	// lastOwner is the sub-entity that contributed the final argument.
	var lastOwner string
	for _, inst := range node.Complex {
		args, err := convertParams(inst.Args)
		if err != nil {
			return nil, err
		}
		name := strings.ToUpper(inst.Name)
		rec.Types = append(rec.Types, name)
		rec.Args = append(rec.Args, args...)
		if len(args) > 0 {
			lastOwner = name
		}
	}
	if n := len(rec.Args); n > 0 && lastOwner == representationItem && rec.Args[n-1].IsEmptyString() {
		rec.Args = rec.Args[:n-1]
	}
	return rec, nil
}

func convertParams(nodes []*paramNode) ([]record.Param, error) {
	out := make([]record.Param, 0, len(nodes))
	for _, n := range nodes {
		p, err := convertParam(n)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func convertParam(n *paramNode) (record.Param, error) {
	switch {
	case n.Omitted:
		return record.Param{Kind: record.KindOmitted, Raw: "$"}, nil
	case n.Derived:
		return record.Param{Kind: record.KindDerived, Raw: "*"}, nil
	case n.Ref != nil:
		id, err := record.ParseID(*n.Ref)
		if err != nil {
			return record.Param{}, err
		}
		return record.NewRef(id), nil
	case n.String != nil:
		raw := *n.String
		text := strings.ReplaceAll(raw[1:len(raw)-1], "''", "'")
		return record.Param{Kind: record.KindString, Raw: raw, Text: text}, nil
	case n.Enum != nil:
		raw := *n.Enum
		return record.Param{Kind: record.KindEnum, Raw: raw, Text: strings.ToUpper(strings.Trim(raw, "."))}, nil
	case n.Number != nil:
		f, err := strconv.ParseFloat(*n.Number, 64)
		if err != nil {
			return record.Param{}, fmt.Errorf("invalid number %q: %w", *n.Number, err)
		}
		return record.Param{Kind: record.KindNumber, Raw: *n.Number, Number: f}, nil
	case n.Typed != nil:
		items, err := convertParams(n.Typed.Args)
		if err != nil {
			return record.Param{}, err
		}
		name := strings.ToUpper(n.Typed.Name)
		return record.Param{Kind: record.KindTyped, Raw: name + rawList(items), Text: name, Items: items}, nil
	case n.List != nil:
		items, err := convertParams(n.List.Items)
		if err != nil {
			return record.Param{}, err
		}
		return record.Param{Kind: record.KindList, Raw: rawList(items), Items: items}, nil
	}
	return record.Param{}, fmt.Errorf("empty parameter")
}

func rawList(items []record.Param) string {
	raws := make([]string, len(items))
	for i, it := range items {
		raws[i] = it.Raw
	}
	return "(" + strings.Join(raws, ",") + ")"
}

func abbreviate(s string) string {
	const max = 120
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
