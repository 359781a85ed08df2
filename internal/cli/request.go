package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/samvad-hq/samvad-fetcher/pkg/requests"
	"github.com/spf13/cobra"
)

type payloadKind int

const (
	payloadQuery payloadKind = iota
	payloadJSON
	payloadForm
)

type requestSpec struct {
	use     string
	method  string
	short   string
	payload payloadKind
}

var requestCommands = []requestSpec{
	{use: "get", method: requests.MethodGet, short: "Send a GET request with optional query parameters", payload: payloadQuery},
	{use: "post", method: requests.MethodPost, short: "Send a POST request with a JSON body", payload: payloadJSON},
	{use: "post-form", method: requests.MethodPostForm, short: "Send a POST request with a form-encoded body", payload: payloadForm},
	{use: "put", method: requests.MethodPut, short: "Send a PUT request with a JSON body", payload: payloadJSON},
	{use: "delete", method: requests.MethodDelete, short: "Send a DELETE request with a JSON body", payload: payloadJSON},
}

func newRequestCmd(a *App, spec requestSpec) *cobra.Command {
	var (
		headers []string
		query   []string
		form    []string
		data    string
		extract string
	)

	cmd := &cobra.Command{
		Use:   spec.use + " URL",
		Short: spec.short,
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := requests.Request{
				Method:  spec.method,
				URL:     args[0],
				Extract: extract,
			}

			var err error
			if req.Headers, err = parseHeaders(headers); err != nil {
				return &usageError{err: err}
			}
			switch spec.payload {
			case payloadQuery:
				req.Query, err = parsePairs(query, "query")
			case payloadForm:
				req.Form, err = parsePairs(form, "form")
			case payloadJSON:
				req.JSON, err = parseJSONData(data)
			}
			if err != nil {
				return &usageError{err: err}
			}

			runner, err := a.runner()
			if err != nil {
				return &ConfigError{Err: err}
			}
			res, err := runner.Execute(cmd.Context(), req)
			if err != nil {
				return &usageError{err: err}
			}

			printStatus(a.Err, res)
			if res.Err != nil {
				return res.Err
			}
			fmt.Fprint(a.Out, res.Extracted)
			if !strings.HasSuffix(res.Extracted, "\n") {
				fmt.Fprintln(a.Out)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, `request header as "Name: value" (repeatable)`)
	cmd.Flags().StringVar(&extract, "extract", "", "gjson path to print instead of the full body")
	switch spec.payload {
	case payloadQuery:
		cmd.Flags().StringArrayVarP(&query, "query", "q", nil, "query parameter as key=value (repeatable)")
	case payloadForm:
		cmd.Flags().StringArrayVarP(&form, "form", "f", nil, "form field as key=value (repeatable)")
	case payloadJSON:
		cmd.Flags().StringVarP(&data, "data", "d", "", "JSON body, or @path to read it from a file")
	}
	return cmd
}

func parseHeaders(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(raw))
	for _, h := range raw {
		name, value, ok := strings.Cut(h, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("header %q must look like \"Name: value\"", h)
		}
		out[name] = strings.TrimSpace(value)
	}
	return out, nil
}

func parsePairs(raw []string, what string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(raw))
	for _, p := range raw {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%s %q must look like key=value", what, p)
		}
		out[key] = value
	}
	return out, nil
}

// parseJSONData decodes the --data flag. An empty flag yields a nil payload.
func parseJSONData(data string) (any, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil, nil
	}
	raw := []byte(data)
	if path, ok := strings.CutPrefix(data, "@"); ok {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read json body: %w", err)
		}
		raw = b
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("--data is not valid JSON: %w", err)
	}
	return v, nil
}
