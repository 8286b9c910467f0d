package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"homework-planner/internal/model"
)

const (
	// DefaultTableSelector is the results table on the class-register page.
	DefaultTableSelector = "#table-rcla"

	dateCellIndex  = 0
	tasksCellIndex = 2
	minCells       = 3
)

// ErrTableNotFound is returned when the markup does not contain the table.
var ErrTableNotFound = errors.New("assignments table not found in markup")

// ParseTable extracts raw rows from markup containing the assignments table.
// Rows with fewer than three cells are skipped; fragments without a colon are dropped.
func ParseTable(markup, tableSelector string) ([]model.RawAssignmentRow, error) {
	return ParseTableWith(markup, tableSelector, DefaultStrategies)
}

// ParseTableWith is ParseTable with an explicit strategy ranking.
func ParseTableWith(markup, tableSelector string, strategies []FragmentStrategy) ([]model.RawAssignmentRow, error) {
	if tableSelector == "" {
		tableSelector = DefaultTableSelector
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse table markup: %w", err)
	}

	table := doc.Find(tableSelector).First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, tableSelector)
	}

	var (
		rows     []model.RawAssignmentRow
		parseErr error
	)
	table.Find("tbody tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		cells := tr.ChildrenFiltered("td")
		if cells.Length() < minCells {
			return true
		}

		dateHTML, err := cells.Eq(dateCellIndex).Html()
		if err != nil {
			parseErr = fmt.Errorf("failed to render date cell: %w", err)
			return false
		}
		tasksHTML, err := cells.Eq(tasksCellIndex).Html()
		if err != nil {
			parseErr = fmt.Errorf("failed to render tasks cell: %w", err)
			return false
		}

		due := FirstLine(dateHTML)
		for _, fragment := range SplitFragments(tasksHTML) {
			subject, title, ok := ParseFragment(fragment, strategies)
			if !ok {
				continue
			}
			rows = append(rows, model.RawAssignmentRow{
				Subject: subject,
				Title:   title,
				DueDate: due,
			})
		}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return rows, nil
}
