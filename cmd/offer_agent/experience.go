package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/offer-composer/internal/observability"
	"github.com/jonathan/offer-composer/internal/types"
	"github.com/spf13/cobra"
)

var experienceCmd = &cobra.Command{
	Use:   "experience",
	Short: "Show an employee's relevant work experience",
	Long:  "Looks up an employee by ID or user name and prints the weighted years of relevant work experience together with the recorded skills.",
	RunE:  runExperience,
}

var (
	experienceEmployeeID string
	experienceUserName   string
	experienceJSON       bool
)

func init() {
	experienceCmd.Flags().StringVar(&experienceEmployeeID, "employee-id", "", "Employee ID")
	experienceCmd.Flags().StringVar(&experienceUserName, "user-name", "", "Employee user name")
	experienceCmd.Flags().BoolVar(&experienceJSON, "json", false, "Print JSON instead of a summary")

	experienceCmd.MarkFlagsMutuallyExclusive("employee-id", "user-name")
	experienceCmd.MarkFlagsOneRequired("employee-id", "user-name")

	rootCmd.AddCommand(experienceCmd)
}

// experienceSummary is the --json output
type experienceSummary struct {
	EmployeeID             uuid.UUID `json:"employee_id"`
	UserName               string    `json:"user_name"`
	Name                   string    `json:"name"`
	RelevantWorkExperience int       `json:"relevant_work_experience"`
}

func summarize(e *types.Employee, now time.Time) experienceSummary {
	return experienceSummary{
		EmployeeID:             e.ID,
		UserName:               e.UserName,
		Name:                   e.FullName(),
		RelevantWorkExperience: e.RelevantWorkExperienceAt(now),
	}
}

func runExperience(_ *cobra.Command, _ []string) error {
	cfg, err := settings(nil)
	if err != nil {
		return err
	}
	ctx := context.Background()

	b, err := connect(ctx, cfg, newLogger(cfg))
	if err != nil {
		return err
	}
	defer b.Close()

	var employee *types.Employee
	if experienceEmployeeID != "" {
		id, err := uuid.Parse(experienceEmployeeID)
		if err != nil {
			return fmt.Errorf("invalid employee ID format: %w", err)
		}
		employee, err = b.db.GetEmployee(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load employee: %w", err)
		}
	} else {
		employee, err = b.db.GetEmployeeByUserName(ctx, experienceUserName)
		if err != nil {
			return fmt.Errorf("failed to load employee: %w", err)
		}
	}
	if employee == nil {
		return fmt.Errorf("employee not found")
	}

	now := time.Now()
	if experienceJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summarize(employee, now))
	}

	observability.NewPrinter(os.Stdout, cfg.Currency).PrintEmployee(employee, now)
	return nil
}
