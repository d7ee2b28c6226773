// Command screening-inspect prints the allegation matrix and the
// relationships card of one screening as FERB currently reports them.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/mmdatafocus/intake_backend/allegations"
	"github.com/mmdatafocus/intake_backend/ferb"
	"github.com/mmdatafocus/intake_backend/models"
	"github.com/mmdatafocus/intake_backend/relationships"
	"github.com/mmdatafocus/intake_backend/screening"
	"github.com/mmdatafocus/intake_backend/utils"
	"github.com/olekukonko/tablewriter"
)

func main() {
	_ = godotenv.Load()

	screeningId := flag.String("screening", "", "screening id")
	token := flag.String("token", os.Getenv("FERB_TOKEN"), "FERB session token")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	if strings.TrimSpace(*screeningId) == "" {
		color.Red("missing -screening")
		flag.Usage()
		os.Exit(2)
	}

	client, err := ferb.NewClient()
	if err != nil {
		log.Fatalf("ferb client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	ctx = utils.SetTokenInContext(ctx, *token)

	payload, err := client.GetScreening(ctx, *screeningId)
	if err != nil {
		color.Red("Error fetching screening: %v", err)
		os.Exit(1)
	}
	s := screening.Normalize(payload)

	codes, err := client.GetSystemCodes(ctx)
	if err != nil {
		color.Red("Error fetching system codes: %v", err)
	}
	people, err := client.GetRelationships(ctx, s.ID)
	if err != nil {
		color.Red("Error fetching relationships: %v", err)
	}

	printScreening(s)
	printParticipants(s.Participants)
	printAllegations(s)
	printRelationships(relationships.People(s.Participants, people, codes, nil))
}

func printScreening(s models.Screening) {
	color.Cyan("\n=== Screening %s ===", s.ID)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Field", "Value"})
	table.Append([]string{"Name", value(s.Name)})
	table.Append([]string{"Assignee", value(s.Assignee)})
	table.Append([]string{"Started", value(s.StartedAt)})
	table.Append([]string{"Decision", value(s.ScreeningDecision)})
	table.Append([]string{"Referral", value(s.ReferralID)})
	if s.ReadOnly() {
		table.Append([]string{"Status", "read-only"})
	}
	table.Render()
}

func printParticipants(participants []models.Participant) {
	color.Yellow("\nParticipants")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Name", "Roles", "Legacy ID", "Phones"})
	for _, p := range participants {
		phones := make([]string, 0, len(p.PhoneNumbers))
		for _, n := range p.PhoneNumbers {
			phones = append(phones, utils.FormatPhoneNumber(n.Number, utils.CountryCode))
		}
		table.Append([]string{
			string(p.ID),
			p.DisplayName(),
			strings.Join(p.Roles, ", "),
			p.KnownLegacyID(),
			strings.Join(phones, ", "),
		})
	}
	table.Render()
}

func printAllegations(s models.Screening) {
	color.Yellow("\nAllegations")
	rows := allegations.BuildMatrix(s.Participants, s.Allegations)
	if len(rows) == 0 {
		fmt.Println("no victim/perpetrator pairs")
		return
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Victim", "Perpetrator", "Types"})
	for _, row := range rows {
		victim := ""
		if row.ShowVictimName {
			victim = row.VictimName
		}
		table.Append([]string{victim, row.PerpetratorName, strings.Join(row.AllegationTypes, ", ")})
	}
	table.Render()
}

func printRelationships(people []relationships.Person) {
	color.Yellow("\nRelationships")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Person", "Related To", "Relationship", "Attachable"})
	for _, p := range people {
		if len(p.Relationships) == 0 {
			table.Append([]string{p.Name, "", "", ""})
			continue
		}
		for i, r := range p.Relationships {
			name := ""
			if i == 0 {
				name = p.Name
			}
			attachable := "no"
			if r.Attachable {
				attachable = "yes"
			}
			table.Append([]string{name, r.Name, r.Type, attachable})
		}
	}
	table.Render()
}

func value(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
