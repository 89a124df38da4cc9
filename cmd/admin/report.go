package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/application/report"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	infrapdf "github.com/jhoicas/Asistencia-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Asistencia-api/internal/infrastructure/postgres"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Reportes de asistencia",
}

var reportDailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Hoja diaria de asistencia",
	Long: `Imprime la hoja diaria (tabla o JSON). Con --out escribe el PDF en la ruta indicada.
Sin --date usa el día local actual de ATTENDANCE_TIMEZONE.`,
	Args: cobra.NoArgs,
	RunE: runReportDaily,
}

func init() {
	reportDailyCmd.Flags().String("date", "", "Día local YYYY-MM-DD")
	reportDailyCmd.Flags().String("out", "", "Ruta del PDF a generar")
	reportDailyCmd.Flags().Bool("json", false, "Salida JSON")
	reportCmd.AddCommand(reportDailyCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReportDaily(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	loc, err := e.cfg.Attendance.Location()
	if err != nil {
		return err
	}
	uc := report.NewUseCase(
		postgres.NewEmployeeRepository(e.pool),
		postgres.NewAttendanceRepository(e.pool),
		infrapdf.NewMarotoPDFGenerator(),
		loc, e.cfg.Report.Title,
	)

	day := uc.Today()
	if s := mustGetString(cmd, "date"); s != "" {
		if day, err = time.Parse(entity.DateLayout, s); err != nil {
			return fmt.Errorf("--date debe tener formato YYYY-MM-DD: %w", err)
		}
	}

	if out := mustGetString(cmd, "out"); out != "" {
		doc, err := uc.DailyPDF(ctx, day)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, doc, 0o644); err != nil {
			return fmt.Errorf("escribir %s: %w", out, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "PDF generado: %s\n", out)
		return nil
	}

	rep, err := uc.Daily(ctx, day)
	if err != nil {
		return err
	}
	if mustGetBool(cmd, "json") {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	printDaily(cmd, rep, loc)
	return nil
}

func printDaily(cmd *cobra.Command, rep *dto.DailyReport, loc *time.Location) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Fecha: %s (%s)\n\n", rep.Date, rep.Timezone)
	fmt.Fprintln(w, "EMPLEADO\tÁREA\tENTRADA\tSALIDA\tMARC.\tHORAS")
	for _, r := range rep.Rows {
		out := hhmm(r.LastOut, loc)
		if r.OpenShift {
			out = "abierto"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			r.Name, r.Department, hhmm(r.FirstIn, loc), out, r.Events, r.WorkedHours.StringFixed(2))
	}
	fmt.Fprintf(w, "\nTotal horas:\t%s\n", rep.TotalHours.StringFixed(2))
	_ = w.Flush()
}

func hhmm(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "-"
	}
	return t.In(loc).Format("15:04")
}
