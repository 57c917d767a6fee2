package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

var parseCmd = &cobra.Command{
	Use:   "parse <arquivo>",
	Short: "Processa uma planilha (CSV/XLSX) e imprime o resultado em JSON",
	Long: `Processa uma planilha sem gravar nada no banco.

Exemplo:
  ligue-outreach parse ./leads.xlsx --region Brasil`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		region, _ := cmd.Flags().GetString("region")

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}

		uc := usecase.NewParseLeadsUseCase(region, zap.NewNop())
		result, err := uc.Execute(cmd.Context(), usecase.ParseLeadsInput{Data: data, Filename: filepath.Base(args[0])})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	parseCmd.Flags().String("region", "Brasil", "região aplicada às linhas sem região")
}
