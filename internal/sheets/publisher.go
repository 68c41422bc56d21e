package sheets

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

type Publisher interface {
	SheetExists(ctx context.Context, name string) (bool, error)
	CreateSheet(ctx context.Context, name string) error
	ClearRange(ctx context.Context, name, rng string) error
	WriteRows(ctx context.Context, name, anchor string, rows [][]any) error
}

// Publish replaces the contents of sheet name with rows, creating the
// sheet when it does not exist yet.
func Publish(ctx context.Context, p Publisher, name string, rows [][]any) error {
	ok, err := p.SheetExists(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		if err := p.CreateSheet(ctx, name); err != nil {
			return err
		}
	} else if err := p.ClearRange(ctx, name, ""); err != nil {
		return err
	}
	return p.WriteRows(ctx, name, "A1", rows)
}

// A1 renders an A1-notation range on sheet name. An empty rng addresses
// the whole sheet.
func A1(name, rng string) string {
	quoted := "'" + strings.ReplaceAll(name, "'", "''") + "'"
	if rng == "" {
		return quoted
	}
	return quoted + "!" + rng
}

type Client struct {
	srv           *sheetsv4.Service
	spreadsheetID string
}

func New(ctx context.Context, hc *http.Client, spreadsheetID string, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(hc)}, opts...)
	srv, err := sheetsv4.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}
	return &Client{srv: srv, spreadsheetID: spreadsheetID}, nil
}

func (c *Client) SpreadsheetID() string { return c.spreadsheetID }

func (c *Client) SheetExists(ctx context.Context, name string) (bool, error) {
	meta, err := c.srv.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return false, fmt.Errorf("get spreadsheet: %w", err)
	}
	for _, s := range meta.Sheets {
		if s.Properties != nil && s.Properties.Title == name {
			return true, nil
		}
	}
	return false, nil
}

func (c *Client) CreateSheet(ctx context.Context, name string) error {
	req := &sheetsv4.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsv4.Request{{
			AddSheet: &sheetsv4.AddSheetRequest{
				Properties: &sheetsv4.SheetProperties{Title: name},
			},
		}},
	}
	if _, err := c.srv.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add sheet %q: %w", name, err)
	}
	return nil
}

func (c *Client) ClearRange(ctx context.Context, name, rng string) error {
	if _, err := c.srv.Spreadsheets.Values.Clear(c.spreadsheetID, A1(name, rng), &sheetsv4.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %q: %w", name, err)
	}
	return nil
}

// WriteRows writes with USER_ENTERED so the sheet parses numbers itself.
func (c *Client) WriteRows(ctx context.Context, name, anchor string, rows [][]any) error {
	vr := &sheetsv4.ValueRange{Values: rows}
	_, err := c.srv.Spreadsheets.Values.Update(c.spreadsheetID, A1(name, anchor), vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write %q: %w", name, err)
	}
	return nil
}
