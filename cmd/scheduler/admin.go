package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/app"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/service/pregnancy"
)

// ---------------------------------------------------------------------------
// user
// ---------------------------------------------------------------------------

func (c *cli) userCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "user", Short: "Manage users"}

	var name, language, timezone string
	add := &cobra.Command{
		Use:   "add <username>",
		Short: "Create an active user with a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := domain.User{ID: uuid.New(), Username: args[0], IsActive: true, CreatedAt: time.Now().UTC()}
			profile := domain.DefaultUserProfile(u.ID)
			profile.Name = name
			profile.LanguageCode = domain.LanguageCode(language)
			profile.Timezone = timezone
			if !profile.LanguageCode.IsValid() {
				return domain.NewValidationError("language", fmt.Sprintf("unsupported language %q", language))
			}
			if _, err := time.LoadLocation(timezone); err != nil {
				return domain.NewValidationError("timezone", err.Error())
			}

			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				err := a.Tx.RunInTx(ctx, func(ctx context.Context) error {
					if err := a.Repos.Users.Create(ctx, &u); err != nil {
						return err
					}
					return a.Repos.Users.SaveProfile(ctx, profile)
				})
				if err != nil {
					return err
				}
				return c.printID("user", u.ID)
			})
		},
	}
	add.Flags().StringVar(&name, "name", "", "display name")
	add.Flags().StringVar(&language, "language", string(domain.LanguageEnglish), "preferred language code")
	add.Flags().StringVar(&timezone, "timezone", domain.DefaultTimezone, "IANA timezone")

	cmd.AddCommand(add)
	return cmd
}

// ---------------------------------------------------------------------------
// pregnancy
// ---------------------------------------------------------------------------

func (c *cli) pregnancyCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "pregnancy", Short: "Declare and inspect pregnancies"}

	var week, visits int
	var lmp string
	declare := &cobra.Command{
		Use:   "declare <user-id>",
		Short: "Declare a pregnancy by week or date of last menstrual period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID("user-id", args[0])
			if err != nil {
				return err
			}
			input, err := declareInput(
				cmd.Flags().Changed("week"), week,
				lmp,
				cmd.Flags().Changed("visits"), visits,
			)
			if err != nil {
				return err
			}

			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				p, err := a.Pregnancies.Declare(ctx, userID, input)
				if err != nil {
					return err
				}
				return c.printPregnancy(p)
			})
		},
	}
	declare.Flags().IntVar(&week, "week", 0, "current pregnancy week (0-42)")
	declare.Flags().StringVar(&lmp, "lmp", "", "date of last menstrual period (YYYY-MM-DD)")
	declare.Flags().IntVar(&visits, "visits", 0, "prenatal visits already done (0-4)")
	declare.MarkFlagsMutuallyExclusive("week", "lmp")

	active := &cobra.Command{
		Use:   "active <user-id>",
		Short: "Print the active pregnancy of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID("user-id", args[0])
			if err != nil {
				return err
			}
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				p, err := a.Pregnancies.Active(ctx, userID)
				if err != nil {
					return err
				}
				return c.printPregnancy(p)
			})
		},
	}

	cmd.AddCommand(declare, active)
	return cmd
}

func declareInput(hasWeek bool, week int, lmp string, hasVisits bool, visits int) (pregnancy.DeclareInput, error) {
	var input pregnancy.DeclareInput
	if hasWeek {
		input.Week = &week
	}
	if lmp != "" {
		d, err := time.Parse(domain.DateLayout, lmp)
		if err != nil {
			return input, domain.NewValidationError("lmp", "must be YYYY-MM-DD")
		}
		input.LastMenstrualPeriod = &d
	}
	if hasVisits {
		input.PrenatalVisits = &visits
	}
	return input, nil
}

func (c *cli) printPregnancy(p *domain.Pregnancy) error {
	if c.jsonOut {
		return c.printJSON(map[string]string{
			"id":                      p.ID.String(),
			"estimated_start_date":    p.EstimatedStartDate.Format(domain.DateLayout),
			"estimated_delivery_date": p.EstimatedDeliveryDate.Format(domain.DateLayout),
		})
	}
	_, err := fmt.Fprintf(c.out, "pregnancy %s: start %s, delivery %s\n", p.ID,
		p.EstimatedStartDate.Format(domain.DateLayout), p.EstimatedDeliveryDate.Format(domain.DateLayout))
	return err
}

// ---------------------------------------------------------------------------
// child
// ---------------------------------------------------------------------------

func (c *cli) childCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "child", Short: "Manage children"}

	var name, dob, gender string
	add := &cobra.Command{
		Use:   "add <user-id>",
		Short: "Register a child of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID("user-id", args[0])
			if err != nil {
				return err
			}
			born, err := time.Parse(domain.DateLayout, dob)
			if err != nil {
				return domain.NewValidationError("dob", "must be YYYY-MM-DD")
			}
			child := domain.Child{
				ID:          uuid.New(),
				UserID:      userID,
				Name:        name,
				DateOfBirth: born,
				Gender:      domain.Gender(strings.ToUpper(gender)),
				CreatedAt:   time.Now().UTC(),
			}

			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Repos.Children.Create(ctx, &child); err != nil {
					return err
				}
				return c.printID("child", child.ID)
			})
		},
	}
	add.Flags().StringVar(&name, "name", "", "child name")
	add.Flags().StringVar(&dob, "dob", "", "date of birth (YYYY-MM-DD)")
	add.Flags().StringVar(&gender, "gender", "", "MALE or FEMALE")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("dob")
	_ = add.MarkFlagRequired("gender")

	cmd.AddCommand(add)
	return cmd
}

// ---------------------------------------------------------------------------
// vaccine
// ---------------------------------------------------------------------------

func (c *cli) vaccineCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "vaccine", Short: "Manage the vaccine catalog"}

	var (
		nickname     string
		male, female bool
		active       bool
		doseWeekAges []string
	)
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a vaccine and its doses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().UTC()
			v := domain.Vaccine{
				ID:                  uuid.New(),
				Name:                args[0],
				ApplicableForMale:   male,
				ApplicableForFemale: female,
				IsActive:            active,
				CreatedAt:           now,
			}
			if nickname != "" {
				v.Nickname = &nickname
			}
			doses, err := parseDoses(v, doseWeekAges, now)
			if err != nil {
				return err
			}

			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				err := a.Tx.RunInTx(ctx, func(ctx context.Context) error {
					if err := a.Repos.Vaccines.CreateVaccine(ctx, &v); err != nil {
						return err
					}
					for i := range doses {
						if err := a.Repos.Vaccines.CreateDose(ctx, &doses[i]); err != nil {
							return err
						}
					}
					return nil
				})
				if err != nil {
					return err
				}
				return c.printID("vaccine", v.ID)
			})
		},
	}
	add.Flags().StringVar(&nickname, "nickname", "", "short name shown to parents")
	add.Flags().BoolVar(&male, "male", true, "applicable for boys")
	add.Flags().BoolVar(&female, "female", true, "applicable for girls")
	add.Flags().BoolVar(&active, "active", false, "publish the vaccine to calendars")
	add.Flags().StringSliceVar(&doseWeekAges, "dose", nil, "dose as WEEK_AGE[:NAME], repeatable")

	cmd.AddCommand(add)
	return cmd
}

// parseDoses reads "WEEK_AGE[:NAME]" dose specs. Unnamed doses are numbered
// after the vaccine.
func parseDoses(v domain.Vaccine, specs []string, now time.Time) ([]domain.VaccineDose, error) {
	doses := make([]domain.VaccineDose, 0, len(specs))
	for i, spec := range specs {
		weekPart, name, _ := strings.Cut(spec, ":")
		week, err := strconv.Atoi(strings.TrimSpace(weekPart))
		if err != nil || week < 0 {
			return nil, domain.NewValidationError("dose", fmt.Sprintf("%q: week age must be a non-negative integer", spec))
		}
		if name = strings.TrimSpace(name); name == "" {
			name = fmt.Sprintf("%s %d", v.FriendlyName(), i+1)
		}
		doses = append(doses, domain.VaccineDose{
			ID:        uuid.New(),
			VaccineID: v.ID,
			Name:      name,
			WeekAge:   week,
			CreatedAt: now,
			Vaccine:   v,
		})
	}
	return doses, nil
}

func (c *cli) printID(entity string, id uuid.UUID) error {
	if c.jsonOut {
		return c.printJSON(map[string]string{"id": id.String()})
	}
	_, err := fmt.Fprintf(c.out, "%s %s created\n", entity, id)
	return err
}
