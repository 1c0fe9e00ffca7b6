// Package contenttest provides site content fixtures for tests.
package contenttest

import (
	"github.com/nikogura/portfolio-cv/pkg/content"
)

// Site returns a fully populated content tree: two major experiences (one
// current), one small experience, three generic skill categories, a
// languages category and two projects.
func Site() (c content.SiteContent) {
	l := content.L

	c = content.SiteContent{
		Hero: content.Hero{
			Name:        "Jane Example",
			Title:       l("Platform Engineer", "Plattform-Ingenieurin"),
			Description: l("Builds reliable systems.", "Baut verlässliche Systeme."),
		},
		About: content.About{
			Title:      l("About", "Über mich"),
			Paragraphs: []content.LocalizedString{l("Hello.", "Hallo.")},
		},
		Experiences: []content.Experience{
			{
				Title:    l("Senior Engineer", "Senior-Ingenieurin"),
				Company:  "Northwind",
				Location: "Berlin",
				Period:   l("Jan 2018 - Dec 2020", "Jan 2018 - Dez 2020"),
				Description: []content.DescriptionItem{
					{Type: content.DescriptionText, Text: l("Ran the platform team.", "Leitete das Plattformteam.")},
					{Type: content.DescriptionAchievement, Text: l("Cut deploy time in half.", "Halbierte die Deploy-Zeit.")},
				},
				Tags: []content.LocalizedString{l("Kubernetes", "Kubernetes"), l("Leadership", "Führung")},
			},
			{
				Title:    l("Staff Engineer", "Staff-Ingenieurin"),
				Company:  "Contoso",
				Location: "Remote",
				Period:   l("Jan 2021 - Present", "Jan 2021 - Heute"),
				Description: []content.DescriptionItem{
					{Type: content.DescriptionAchievement, Text: l("Migrated billing.", "Migrierte die Abrechnung.")},
				},
				Tags: []content.LocalizedString{l("Go", "Go")},
			},
			{
				Title:        l("Freelance Developer", "Freiberufliche Entwicklerin"),
				Company:      "Self-employed",
				Location:     "Hamburg",
				Period:       l("Mar 2016 - Dec 2017", "Mär 2016 - Dez 2017"),
				ProjectScale: content.ProjectScaleSmall,
				Description: []content.DescriptionItem{
					{Type: content.DescriptionText, Text: l("Small web shops.", "Kleine Webshops.")},
				},
			},
		},
		Projects: []content.Project{
			{
				Title:       l("Tracer", "Tracer"),
				Description: l("Distributed tracing demo.", "Demo für verteiltes Tracing."),
				Tags: []content.Tag{
					content.PlainTag("Go"),
					content.LocalizedTag(l("Observability", "Beobachtbarkeit")),
					content.PlainTag("gRPC"),
					content.PlainTag("OpenTelemetry"),
					content.PlainTag("Jaeger"),
					content.PlainTag("Grafana"),
				},
				URL: "https://github.com/jane/tracer",
			},
			{
				Title:       l("Recipes", "Rezepte"),
				Description: l("Meal planner.", "Essensplaner."),
				Tags:        []content.Tag{content.PlainTag("TypeScript")},
			},
		},
		Skills: []content.Skill{
			{Name: l("Golang", "Golang"), Category: content.CategoryProgramming, Level: 5},
			{Name: l("Terraform", "Terraform"), Category: content.CategoryDevOps, Level: 4},
			{Name: l("Python", "Python"), Category: content.CategoryProgramming, Level: 4},
			{Name: l("Perl", "Perl"), Category: content.CategoryProgramming, Level: 2},
			{Name: l("Postgres", "Postgres"), Category: content.CategoryDatabase, Level: 4},
			{Name: l("English", "Englisch"), Category: content.CategoryLanguages, Level: 5},
			{Name: l("German", "Deutsch"), Category: content.CategoryLanguages, Level: 3},
			{Name: l("Ansible", "Ansible"), Category: content.CategoryDevOps, Level: 3},
			{Name: l("Redis", "Redis"), Category: content.CategoryDatabase, Level: 5},
		},
		SkillsSection: content.SkillsSection{
			Title: l("Skills", "Kenntnisse"),
			Categories: map[content.SkillCategory]content.LocalizedString{
				content.CategoryProgramming: l("Programming", "Programmierung"),
				content.CategoryDevOps:      l("DevOps", "DevOps"),
			},
		},
		Contact: content.Contact{
			Email:    "jane@example.com",
			Phone:    "+49 40 123456",
			Website:  "https://jane.example.com/",
			Github:   "https://github.com/jane",
			Linkedin: "https://www.linkedin.com/in/jane-example/",
			Birthday: "01.02.1990",
			Address: content.Address{
				Street: l("Main Street 1", "Hauptstraße 1"),
				City:   l("Hamburg", "Hamburg"),
			},
		},
		Footer: content.Footer{
			Copyright: l("All rights reserved.", "Alle Rechte vorbehalten."),
		},
	}

	return c
}
