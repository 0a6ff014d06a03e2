package cmd

import (
	"encoding/json"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/segskip/segskip/constant"
	"github.com/segskip/segskip/segment"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.SetOut(os.Stdout)
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of provider responses",
	Long: `Print the JSON schema of provider responses.

A provider answers GET http://<host>:<port>/<video id> with a JSON array of
these records. Any element that does not match rejects the whole response.`,
	Run: func(cmd *cobra.Command, args []string) {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(providerSchema()))
	},
}

func providerSchema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect([]segment.Record{})
	schema.Title = "Segment list"
	schema.Description = "Response of a " + constant.Segskip + " segment provider"
	return schema
}
