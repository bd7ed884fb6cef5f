package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"yultimate_hub/internal/clock"
	"yultimate_hub/internal/logger"
	"yultimate_hub/internal/models"
	"yultimate_hub/internal/services"
)

func newSeedCmd() *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert baseline records; safe to re-run",
	}
	seedCmd.AddCommand(newSeedAdminCmd())
	seedCmd.AddCommand(newSeedCoachCmd())
	seedCmd.AddCommand(newSeedInstitutionCmd())
	return seedCmd
}

func seeder() (*services.Seeder, error) {
	logger.Setup(cfg.Log)
	db, err := openDatabase()
	if err != nil {
		return nil, err
	}
	return services.NewSeeder(db, clock.New()), nil
}

func personFlags(cmd *cobra.Command, p *services.SeedPerson) {
	cmd.Flags().StringVar(&p.FirstName, "first-name", p.FirstName, "First name")
	cmd.Flags().StringVar(&p.LastName, "last-name", p.LastName, "Last name")
	cmd.Flags().StringVar(&p.Email, "email", p.Email, "Email address")
	cmd.Flags().StringVar(&p.Phone, "phone", p.Phone, "Phone number")
	cmd.Flags().StringVar(&p.Password, "password", p.Password, "Login password")
}

func newSeedAdminCmd() *cobra.Command {
	p := services.SeedPerson{FirstName: "Admin", Email: "admin@yultimate.local", Phone: "0000000000"}
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Create the admin account whose unique id is ADMIN_CODE",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := seeder()
			if err != nil {
				return err
			}
			admin, err := s.Admin(cmd.Context(), cfg.AdminCode, p)
			if err != nil {
				return err
			}
			logrus.WithField("person_id", admin.ID).Info("Admin seeded.")
			fmt.Fprintf(cmd.OutOrStdout(), "admin %d (%s)\n", admin.ID, admin.UniqueUserID)
			return nil
		},
	}
	personFlags(cmd, &p)
	return cmd
}

func newSeedCoachCmd() *cobra.Command {
	p := services.SeedPerson{FirstName: "Coach", LastName: "Demo", Email: "coach@yultimate.local", Phone: "9000000000", Password: "coach123"}
	var institutionID uint
	cmd := &cobra.Command{
		Use:   "coach",
		Short: "Create a coach linked to an institution",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := seeder()
			if err != nil {
				return err
			}
			coach, err := s.Coach(cmd.Context(), p, institutionID)
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{"person_id": coach.ID, "institution_id": institutionID}).Info("Coach seeded.")
			fmt.Fprintf(cmd.OutOrStdout(), "coach %d (%s)\n", coach.ID, coach.UniqueUserID)
			return nil
		},
	}
	personFlags(cmd, &p)
	cmd.Flags().UintVar(&institutionID, "institution", 0, "Institution id to link the coach to")
	return cmd
}

func newSeedInstitutionCmd() *cobra.Command {
	var name, typ, location string
	cmd := &cobra.Command{
		Use:   "institution",
		Short: "Create an institution",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := seeder()
			if err != nil {
				return err
			}
			inst, err := s.Institution(cmd.Context(), name, typ, location)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "institution %d (%s)\n", inst.ID, inst.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "Demo School", "Institution name")
	cmd.Flags().StringVar(&typ, "type", models.AffiliationSchool, "school or community")
	cmd.Flags().StringVar(&location, "location", "", "Location")
	return cmd
}
