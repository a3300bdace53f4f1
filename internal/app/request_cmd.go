package app

import (
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	"github.com/storefront-hq/catalog-client/pkg/jsonrequest"
)

var allowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}

func newRequestCommand(rt *runtime) *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:       "request METHOD URL",
		Short:     "Send a raw JSON request and print the JSON response",
		Long:      "URL may be absolute or relative to the selected endpoint.",
		Args:      cobra.ExactArgs(2),
		ValidArgs: allowedMethods,
		RunE: func(cmd *cobra.Command, args []string) error {
			method := strings.ToUpper(args[0])
			target, err := rt.resolveTarget(args[1])
			if err != nil {
				return err
			}
			payload, err := parseData(data)
			if err != nil {
				return err
			}

			rt.log.DebugObj("issuing request", "request", map[string]any{
				"method":   method,
				"url":      target,
				"has_body": payload != nil,
			})

			var body any
			if payload != nil {
				body = payload
			}
			result, err := jsonrequest.Request(cmd.Context(), rt.client, target, method, body)
			if err != nil {
				return rt.report(cmd, err)
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "JSON request body")
	return cmd
}
