package app

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
	"github.com/storefront-hq/catalog-client/internal/config"
	"github.com/storefront-hq/catalog-client/internal/endpoints"
	"github.com/storefront-hq/catalog-client/internal/logger"
	"github.com/storefront-hq/catalog-client/pkg/httpclient"
	"github.com/storefront-hq/catalog-client/pkg/jsonrequest"
	"go.uber.org/zap/zapcore"
)

// Options carries dependencies the command tree would otherwise build itself.
type Options struct {
	HTTPClient httpclient.Client
}

// runtime is the state shared by every command once flags are parsed.
type runtime struct {
	opts       Options
	cfg        *config.Config
	log        logger.Logger
	client     httpclient.Client
	registry   *endpoints.Registry
	endpointID string
}

// NewRootCommand builds the catalog command tree.
func NewRootCommand(opts Options) *cobra.Command {
	rt := &runtime{opts: opts, log: logger.NopLogger{}}

	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Talk to the products catalogue API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("api-url", "", "products resource root (overrides API_URL)")
	pf.String("log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")
	pf.String("endpoints-file", "", "YAML/JSON file with named endpoints (overrides ENDPOINTS_FILE)")
	pf.StringVar(&rt.endpointID, "endpoint", endpoints.ProductsID, "endpoint id to use as the products root")

	root.AddCommand(newRequestCommand(rt), newProductsCommand(rt))
	return root
}

func (rt *runtime) init(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	rt.cfg = cfg

	log, err := logger.New(cfg, zapcore.AddSync(cmd.ErrOrStderr()))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	rt.log = log

	reg, err := endpoints.LoadRegistry(cfg.EndpointsFile)
	if err != nil {
		return fmt.Errorf("load endpoints: %w", err)
	}
	apiEndpoint := endpoints.Endpoint{ID: endpoints.ProductsID, Name: "configured api_url", URL: cfg.APIURL}
	if cfg.APIURLExplicit {
		err = reg.Set(apiEndpoint)
	} else {
		_, err = reg.Ensure(apiEndpoint)
	}
	if err != nil {
		return fmt.Errorf("register api_url endpoint: %w", err)
	}
	rt.registry = reg

	rt.client = rt.opts.HTTPClient
	if rt.client == nil {
		rt.client = httpclient.NewRestyClient()
	}

	rt.log.DebugObj("catalog cli configured", "config", map[string]any{
		"app_env":         cfg.Env,
		"endpoints_file":  cfg.EndpointsFile,
		"endpoint":        rt.endpointID,
		"endpoints_count": len(reg.All()),
	})
	return nil
}

// baseURL resolves the selected endpoint.
func (rt *runtime) baseURL() (string, error) {
	ep, ok := rt.registry.ByID(rt.endpointID)
	if !ok {
		return "", fmt.Errorf("unknown endpoint %q", rt.endpointID)
	}
	return ep.URL, nil
}

// resolveTarget resolves ref against the selected endpoint; absolute refs pass through.
func (rt *runtime) resolveTarget(ref string) (string, error) {
	target, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if target.IsAbs() {
		return target.String(), nil
	}
	raw, err := rt.baseURL()
	if err != nil {
		return "", err
	}
	base, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse endpoint url: %w", err)
	}
	return base.ResolveReference(target).String(), nil
}

// report logs and echoes a failed request's payload before handing the error back.
func (rt *runtime) report(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	if rf, ok := jsonrequest.IsRequestFailed(err); ok {
		rt.log.WarnObj("request failed", "request_error", map[string]any{
			"method": rf.Method,
			"url":    rf.URL,
			"status": rf.StatusCode,
		})
		_ = writeJSON(cmd.ErrOrStderr(), rf.Payload)
		return err
	}
	rt.log.WarnObj("command failed", "error", err.Error())
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseData validates a --data argument. Empty means no payload.
func parseData(raw string) (json.RawMessage, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if !json.Valid([]byte(raw)) {
		return nil, fmt.Errorf("--data is not valid JSON")
	}
	return json.RawMessage(raw), nil
}
