package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

type smokeOptions struct {
	baseURL string
	lat     string
	lng     string
}

type smokeResult struct {
	Status  string
	Latency time.Duration
	Note    string
}

type smokeCase struct {
	Name string
	Run  func(ctx context.Context, r *smokeRunner) smokeResult
}

type smokeRunner struct {
	opts smokeOptions
	http *resty.Client
}

type askReply struct {
	Message string `json:"message"`
}

func newSmokeCmd(root *rootOptions) *cobra.Command {
	opts := smokeOptions{}
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Run end-to-end checks against a running API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), root.timeout)
			defer cancel()

			opts.baseURL = strings.TrimRight(opts.baseURL, "/")
			r := &smokeRunner{
				opts: opts,
				http: resty.New().SetBaseURL(opts.baseURL).SetTimeout(30 * time.Second),
			}
			pass, fail, skipped := r.runAll(ctx, cmd)
			fmt.Fprintf(cmd.OutOrStdout(), "\n== Summary ==\nPASS=%d FAIL=%d SKIP=%d\n", pass, fail, skipped)
			if fail > 0 {
				return fmt.Errorf("%d smoke checks failed", fail)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "http://localhost:8000", "API base URL")
	cmd.Flags().StringVar(&opts.lat, "lat", "16.4637", "latitude used by the directions check")
	cmd.Flags().StringVar(&opts.lng, "lng", "107.5909", "longitude used by the directions check")
	return cmd
}

func (r *smokeRunner) runAll(ctx context.Context, cmd *cobra.Command) (pass, fail, skipped int) {
	out := cmd.OutOrStdout()
	for _, tc := range r.cases() {
		res := tc.Run(ctx, r)
		switch res.Status {
		case "PASS":
			pass++
		case "FAIL":
			fail++
		case "SKIP":
			skipped++
		}
		fmt.Fprintf(out, "%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Fprintf(out, " (%s)", res.Latency.Round(time.Millisecond))
		}
		if res.Note != "" {
			fmt.Fprintf(out, " - %s", res.Note)
		}
		fmt.Fprintln(out)
	}
	return pass, fail, skipped
}

func (r *smokeRunner) cases() []smokeCase {
	return []smokeCase{
		{
			Name: "Health: GET /health",
			Run: func(ctx context.Context, r *smokeRunner) smokeResult {
				start := time.Now()
				resp, err := r.http.R().SetContext(ctx).Get("/health")
				if err != nil {
					return smokeResult{Status: "FAIL", Note: err.Error()}
				}
				if resp.StatusCode() != http.StatusOK || strings.TrimSpace(resp.String()) != "OK" {
					return smokeResult{Status: "FAIL", Note: fmt.Sprintf("status=%d body=%q", resp.StatusCode(), resp.String())}
				}
				return smokeResult{Status: "PASS", Latency: time.Since(start)}
			},
		},
		{
			Name: "Ask: empty question",
			Run: func(ctx context.Context, r *smokeRunner) smokeResult {
				return r.expect(ctx, map[string]string{"question": "  "}, "Vui lòng nhập câu hỏi")
			},
		},
		{
			Name: "Ask: current weather",
			Run: func(ctx context.Context, r *smokeRunner) smokeResult {
				return r.expect(ctx, map[string]string{"question": "Thời tiết ở Hà Nội hôm nay thế nào?"}, "°C")
			},
		},
		{
			Name: "Ask: forecast tomorrow",
			Run: func(ctx context.Context, r *smokeRunner) smokeResult {
				return r.expect(ctx, map[string]string{"question": "Ngày mai Đà Nẵng có mưa không?"}, "Ngày mai")
			},
		},
		{
			Name: "Ask: unknown city",
			Run: func(ctx context.Context, r *smokeRunner) smokeResult {
				return r.expect(ctx, map[string]string{"question": "Thời tiết ở Atlantisxyz hôm nay?"}, "Atlantisxyz")
			},
		},
		{
			Name: "Ask: navigation without location",
			Run: func(ctx context.Context, r *smokeRunner) smokeResult {
				return r.expect(ctx, map[string]string{"question": "Chỉ đường đến Đại Nội Huế"}, "/maps/search/", "chia sẻ vị trí")
			},
		},
		{
			Name: "Ask: navigation with location",
			Run: func(ctx context.Context, r *smokeRunner) smokeResult {
				return r.expect(ctx, map[string]string{
					"question":  "Chỉ đường đến Đại Nội Huế",
					"latitude":  r.opts.lat,
					"longitude": r.opts.lng,
				}, "/maps/dir/")
			},
		},
		{
			Name: "Quota: GET /quota",
			Run: func(ctx context.Context, r *smokeRunner) smokeResult {
				resp, err := r.http.R().SetContext(ctx).Get("/quota")
				if err != nil {
					return smokeResult{Status: "FAIL", Note: err.Error()}
				}
				switch resp.StatusCode() {
				case http.StatusOK:
					return smokeResult{Status: "PASS", Note: strings.TrimSpace(resp.String())}
				case http.StatusNotFound:
					return smokeResult{Status: "SKIP", Note: "quota disabled"}
				default:
					return smokeResult{Status: "FAIL", Note: fmt.Sprintf("status=%d", resp.StatusCode())}
				}
			},
		},
	}
}

// expect asks once and requires every fragment to appear in the reply.
func (r *smokeRunner) expect(ctx context.Context, query map[string]string, fragments ...string) smokeResult {
	var body askReply
	start := time.Now()
	resp, err := r.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetResult(&body).
		Get("/ask")
	if err != nil {
		return smokeResult{Status: "FAIL", Note: err.Error()}
	}
	latency := time.Since(start)
	if resp.StatusCode() != http.StatusOK {
		return smokeResult{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode())}
	}
	for _, f := range fragments {
		if !strings.Contains(body.Message, f) {
			return smokeResult{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("missing %q in %q", f, body.Message)}
		}
	}
	return smokeResult{Status: "PASS", Latency: latency}
}
