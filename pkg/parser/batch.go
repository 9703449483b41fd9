package parser

import (
	"fmt"
	"iter"

	"github.com/xarfio/sdk/pkg/errors"
	"github.com/xarfio/sdk/pkg/validate"
	"github.com/xarfio/sdk/pkg/xarf"
)

// ParseBatch lazily parses a sequence of inputs. Each element goes
// through the same pipeline as Parse.
//
// In lenient mode a failing element is skipped: its errors are recorded
// under the "inputs.<index>" prefix and iteration continues, so one
// malformed document cannot poison the batch. In strict mode the first
// failing element is yielded as an error and iteration stops.
//
// The returned sequence is restartable; each range over it re-parses the
// inputs. Errors recorded by the batch replace those of earlier calls
// once iteration finishes or is abandoned.
func (p *Parser) ParseBatch(inputs []any) iter.Seq2[*xarf.Report, error] {
	return func(yield func(*xarf.Report, error) bool) {
		var errs []validate.Error
		var warns []validate.Warning
		defer func() { p.setLast(errs, warns) }()

		for i, input := range inputs {
			report, result, err := p.parse(input)

			prefix := fmt.Sprintf("inputs.%d.", i)
			for _, e := range result.Errors {
				e.Field = prefix + e.Field
				errs = append(errs, e)
			}
			for _, w := range result.Warnings {
				w.Field = prefix + w.Field
				warns = append(warns, w)
			}

			if err != nil {
				if len(result.Errors) == 0 {
					// Decode or conversion failures carry no field-level
					// detail, so record one positional entry.
					errs = append(errs, validate.Error{
						Field:   fmt.Sprintf("inputs.%d", i),
						Code:    validate.CodeParseFailed,
						Message: err.Error(),
					})
				}
				if p.strict {
					yield(nil, errors.Wrap(err, fmt.Sprintf("parser.ParseBatch[%d]", i)))
					return
				}
				continue
			}

			if !yield(report, nil) {
				return
			}
		}
	}
}
