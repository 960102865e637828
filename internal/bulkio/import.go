package bulkio

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/creator-studio/internal/types"
)

// StyleExampleWriter commits style example rows. *db.DB satisfies this.
type StyleExampleWriter interface {
	CreateStyleExample(ctx context.Context, creatorID uuid.UUID, req *types.CreateStyleExampleRequest) (*types.StyleExample, error)
}

// ResponseExampleWriter commits response example groups. *db.DB satisfies
// this. Import uses the nil-preserving commit path so an empty ranking cell
// stays unrated rather than picking up the API creation default.
type ResponseExampleWriter interface {
	ImportResponseExample(ctx context.Context, creatorID uuid.UUID, req *types.CreateResponseExampleRequest) (*types.ResponseExample, error)
}

// rawRow is one data row as read from the file. index is 1-based and does
// not count the header row.
type rawRow struct {
	index  int
	fields []string
	err    error
}

// readRows consumes the CSV, verifying the exact header and collecting every
// data row together with any per-row parse error. Only a missing or
// mismatched header fails the whole call; row-level problems are reported
// per row so the rest of the batch can still commit.
func readRows(r io.Reader, header []string) ([]rawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // field counts validated per row for precise reporting

	got, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file: expected header %q", strings.Join(header, ","))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if !equalFields(got, header) {
		return nil, fmt.Errorf("unexpected header %q: expected %q",
			strings.Join(got, ","), strings.Join(header, ","))
	}

	var rows []rawRow
	for index := 1; ; index++ {
		fields, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			rows = append(rows, rawRow{index: index, err: err})
			continue
		}
		rows = append(rows, rawRow{index: index, fields: fields})
	}
}

func equalFields(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if strings.TrimSpace(a[i]) != b[i] {
			return false
		}
	}
	return true
}

// parseCategory maps the CSV category field to a nullable enum member. An
// empty field means uncategorized.
func parseCategory(field string) (*string, string) {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil, ""
	}
	if !types.ValidCategory(field) {
		return nil, fmt.Sprintf("unknown category %q", field)
	}
	return &field, ""
}

// ImportStyleExamples ingests a CSV with header fan_message,creator_response,category.
// Each row is validated independently: valid rows commit, invalid rows are
// skipped and reported with their 1-based index and reason.
func ImportStyleExamples(ctx context.Context, store StyleExampleWriter, creatorID uuid.UUID, r io.Reader, progress ProgressFunc) (*ImportReport, error) {
	rows, err := readRows(r, styleExampleHeader)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{Total: len(rows)}
	pr := &progressReporter{fn: progress}
	pr.report(0)

	for i, row := range rows {
		if reason := func() string {
			if row.err != nil {
				return row.err.Error()
			}
			if len(row.fields) != len(styleExampleHeader) {
				return fmt.Sprintf("expected %d fields, got %d", len(styleExampleHeader), len(row.fields))
			}
			req := &types.CreateStyleExampleRequest{
				FanMessage:      row.fields[0],
				CreatorResponse: row.fields[1],
			}
			if req.FanMessage == "" {
				return "fan_message must not be empty"
			}
			if req.CreatorResponse == "" {
				return "creator_response must not be empty"
			}
			category, reason := parseCategory(row.fields[2])
			if reason != "" {
				return reason
			}
			req.Category = category

			if _, err := store.CreateStyleExample(ctx, creatorID, req); err != nil {
				return err.Error()
			}
			return ""
		}(); reason != "" {
			report.fail(row.index, reason)
		} else {
			report.Imported++
		}
		pr.report((i + 1) * 100 / len(rows))
	}

	pr.report(100)
	return report, nil
}

// responseGroup accumulates the rows sharing one (fan_message, category)
// pair; they become a single example with multiple candidates, candidates in
// row order.
type responseGroup struct {
	fanMessage string
	category   *string
	rowIndexes []int
	inputs     []types.CandidateResponseInput
}

// ImportResponseExamples ingests a CSV with header fan_message,category,response_text,ranking.
// Rows sharing an identical (fan_message, category) pair merge into one
// example with multiple candidate responses. Row validation and commit
// failures are reported per row; the operation is not atomic across the file.
func ImportResponseExamples(ctx context.Context, store ResponseExampleWriter, creatorID uuid.UUID, r io.Reader, progress ProgressFunc) (*ImportReport, error) {
	rows, err := readRows(r, responseExampleHeader)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{Total: len(rows)}
	pr := &progressReporter{fn: progress}
	pr.report(0)

	processed := 0
	total := len(rows)
	step := func(n int) {
		processed += n
		if total > 0 {
			pr.report(processed * 100 / total)
		}
	}

	var groups []*responseGroup
	byKey := make(map[string]*responseGroup)

	for _, row := range rows {
		reason := ""
		var category *string
		var ranking *int

		switch {
		case row.err != nil:
			reason = row.err.Error()
		case len(row.fields) != len(responseExampleHeader):
			reason = fmt.Sprintf("expected %d fields, got %d", len(responseExampleHeader), len(row.fields))
		case row.fields[0] == "":
			reason = "fan_message must not be empty"
		case row.fields[2] == "":
			reason = "response_text must not be empty"
		default:
			category, reason = parseCategory(row.fields[1])
			if reason == "" {
				ranking, reason = parseRanking(row.fields[3])
			}
		}

		if reason != "" {
			report.fail(row.index, reason)
			step(1)
			continue
		}

		key := row.fields[0] + "\x00"
		if category != nil {
			key += *category
		}
		group, ok := byKey[key]
		if !ok {
			group = &responseGroup{fanMessage: row.fields[0], category: category}
			byKey[key] = group
			groups = append(groups, group)
		}
		group.rowIndexes = append(group.rowIndexes, row.index)
		group.inputs = append(group.inputs, types.CandidateResponseInput{
			ResponseText: row.fields[2],
			Ranking:      ranking,
		})
	}

	for _, group := range groups {
		req := &types.CreateResponseExampleRequest{
			FanMessage: group.fanMessage,
			Category:   group.category,
			Responses:  group.inputs,
		}
		if _, err := store.ImportResponseExample(ctx, creatorID, req); err != nil {
			for _, index := range group.rowIndexes {
				report.fail(index, err.Error())
			}
		} else {
			report.Imported += len(group.rowIndexes)
		}
		step(len(group.rowIndexes))
	}

	pr.report(100)
	return report, nil
}

// parseRanking maps the CSV ranking field to a nullable 0..5 score. An empty
// field means unrated and stays null rather than taking the creation default.
func parseRanking(field string) (*int, string) {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil, ""
	}
	value, err := strconv.Atoi(field)
	if err != nil {
		return nil, fmt.Sprintf("ranking %q is not an integer", field)
	}
	if value < types.RankingMin || value > types.RankingMax {
		return nil, fmt.Sprintf("ranking %d is outside [%d,%d]", value, types.RankingMin, types.RankingMax)
	}
	return &value, ""
}
