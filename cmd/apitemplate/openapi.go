package main

import (
	"bytes"
	"fmt"

	"github.com/JonnyWalker81/apitemplate/internal/server"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Print the OpenAPI document",
	Long:  `Print the OpenAPI 3.1 document served at /swagger/v1/swagger.json to stdout.`,
	RunE:  runOpenAPI,
}

var compact bool

func init() {
	openapiCmd.Flags().BoolVar(&compact, "compact", false, "Print without indentation")
}

func runOpenAPI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	document, err := server.Document(cfg, server.Routes(server.Deps{}))
	if err != nil {
		return fmt.Errorf("failed to build OpenAPI document: %w", err)
	}

	if !compact {
		var out bytes.Buffer
		if err := json.Indent(&out, document, "", "  "); err != nil {
			return err
		}
		document = out.Bytes()
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(document))
	return err
}
