package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vivla-tech/vivla-guides-sub001/internal/admin"
	"github.com/vivla-tech/vivla-guides-sub001/internal/api"
	"github.com/vivla-tech/vivla-guides-sub001/internal/pkg/logging"
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Scriptable resource operations",
	Long: `Non-interactive CRUD over any admin resource.

Resources:
  homes, rooms, room-types, amenities, brands, categories, suppliers,
  home-inventory, styling-guides, appliance-guides, playbooks,
  technical-plans`,
}

var (
	listPage     int
	listPageSize int
	listFilters  []string
	listJSON     bool

	createPayload string
	updatePayload string
	deleteYes     bool
)

var dataListCmd = &cobra.Command{
	Use:   "list <resource>",
	Short: "List one page of a resource",
	Args:  cobra.ExactArgs(1),
	RunE:  runDataList,
}

var dataGetCmd = &cobra.Command{
	Use:   "get <resource> <id>",
	Short: "Fetch one record",
	Args:  cobra.ExactArgs(2),
	RunE:  runDataGet,
}

var dataCreateCmd = &cobra.Command{
	Use:   "create <resource>",
	Short: "Create a record from a JSON payload",
	Args:  cobra.ExactArgs(1),
	RunE:  runDataCreate,
}

var dataUpdateCmd = &cobra.Command{
	Use:   "update <resource> <id>",
	Short: "Partially update a record from a JSON payload",
	Long: `Partially update a record. Only the keys present in the payload are
sent; everything else keeps its current value.`,
	Args: cobra.ExactArgs(2),
	RunE: runDataUpdate,
}

var dataDeleteCmd = &cobra.Command{
	Use:   "delete <resource> <id>",
	Short: "Delete a record (asks for confirmation)",
	Args:  cobra.ExactArgs(2),
	RunE:  runDataDelete,
}

func init() {
	rootCmd.AddCommand(dataCmd)

	dataListCmd.Flags().IntVar(&listPage, "page", 1, "page number")
	dataListCmd.Flags().IntVar(&listPageSize, "page-size", 10, "rows per page")
	dataListCmd.Flags().StringArrayVar(&listFilters, "filter", nil,
		"server-side filter, key=value (repeatable)")
	dataListCmd.Flags().BoolVar(&listJSON, "json", false, "raw JSON output")

	dataCreateCmd.Flags().StringVar(&createPayload, "payload", "", "JSON payload")
	dataCreateCmd.MarkFlagRequired("payload")

	dataUpdateCmd.Flags().StringVar(&updatePayload, "payload", "", "partial JSON payload")
	dataUpdateCmd.MarkFlagRequired("payload")

	dataDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip confirmation")

	dataCmd.AddCommand(dataListCmd)
	dataCmd.AddCommand(dataGetCmd)
	dataCmd.AddCommand(dataCreateCmd)
	dataCmd.AddCommand(dataUpdateCmd)
	dataCmd.AddCommand(dataDeleteCmd)
}

func newAPIClient() *api.Client {
	cfg := loadConfig()
	return api.NewClient(cfg.APIBaseURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(logging.NewConsole(cfg.LogLevel)),
	)
}

func resolveResource(arg string) (api.ResourceType, *admin.Schema, error) {
	res := api.ResourceType(arg)
	schema := admin.SchemaFor(res)
	if schema == nil {
		return "", nil, fmt.Errorf("unknown resource %q", arg)
	}
	return res, schema, nil
}

func runDataList(cmd *cobra.Command, args []string) error {
	res, schema, err := resolveResource(args[0])
	if err != nil {
		return err
	}

	filters := map[string]string{}
	for _, f := range listFilters {
		k, v, ok := strings.Cut(f, "=")
		if !ok {
			return fmt.Errorf("filter %q is not key=value", f)
		}
		filters[k] = v
	}

	client := newAPIClient()
	page, err := api.List[api.Record](cmd.Context(), client, res, api.ListParams{
		Page:     listPage,
		PageSize: listPageSize,
		Filters:  filters,
	})
	if err != nil {
		return err
	}

	if listJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}

	printTable(schema, page)
	return nil
}

func printTable(schema *admin.Schema, page *api.Page[api.Record]) {
	fmt.Printf("%-26s", "ID")
	for _, col := range schema.Columns {
		fmt.Printf("%-*s", col.Width+1, col.Title)
	}
	fmt.Println()

	for _, rec := range page.Items {
		fmt.Printf("%-26s", api.RecordID(rec))
		for _, col := range schema.Columns {
			v := ""
			if raw, ok := rec[col.Key]; ok && raw != nil {
				v = fmt.Sprintf("%v", raw)
			}
			if len(v) > col.Width {
				v = v[:col.Width-1] + "…"
			}
			fmt.Printf("%-*s", col.Width+1, v)
		}
		fmt.Println()
	}

	fmt.Printf("\npage %d/%d · %d total\n", page.Page, page.TotalPages, page.Total)
}

func runDataGet(cmd *cobra.Command, args []string) error {
	res, _, err := resolveResource(args[0])
	if err != nil {
		return err
	}

	client := newAPIClient()
	rec, err := api.GetByID[api.Record](cmd.Context(), client, res, args[1])
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%-20s %v\n", k+":", rec[k])
	}
	return nil
}

func runDataCreate(cmd *cobra.Command, args []string) error {
	res, schema, err := resolveResource(args[0])
	if err != nil {
		return err
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(createPayload), &payload); err != nil {
		return fmt.Errorf("parsing payload: %w", err)
	}

	// Same client-side rules the admin screen applies.
	draft := admin.NewDraft()
	for k, v := range payload {
		draft.Set(k, v)
	}
	if errs := schema.Validate(draft); errs != nil {
		return errs
	}

	client := newAPIClient()
	rec, err := api.Create[api.Record](cmd.Context(), client, res, payload)
	if err != nil {
		return err
	}

	fmt.Printf("✓ created %s %s\n", res, api.RecordID(rec))
	return nil
}

func runDataUpdate(cmd *cobra.Command, args []string) error {
	res, _, err := resolveResource(args[0])
	if err != nil {
		return err
	}

	var partial map[string]any
	if err := json.Unmarshal([]byte(updatePayload), &partial); err != nil {
		return fmt.Errorf("parsing payload: %w", err)
	}

	client := newAPIClient()
	rec, err := api.Update[api.Record](cmd.Context(), client, res, args[1], partial)
	if err != nil {
		return err
	}

	fmt.Printf("✓ updated %s %s\n", res, api.RecordID(rec))
	return nil
}

func runDataDelete(cmd *cobra.Command, args []string) error {
	res, _, err := resolveResource(args[0])
	if err != nil {
		return err
	}
	id := args[1]

	if !deleteYes {
		fmt.Printf("Delete %s %s? This cannot be undone. [y/N]: ", res, id)
		var response string
		fmt.Fscanln(os.Stdin, &response)
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("cancelled")
			return nil
		}
	}

	client := newAPIClient()
	if err := client.Delete(cmd.Context(), res, id); err != nil {
		return err
	}

	fmt.Printf("✓ deleted %s %s\n", res, id)
	return nil
}
