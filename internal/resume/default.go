package resume

import "resumePress/internal/units"

// Default returns the sample document new editors start with.
func Default() Document {
	return Document{
		Content: Content{
			PersonalInfo: PersonalInfo{
				Name:     "John Doe",
				Title:    "Senior Software Engineer",
				Email:    "john.doe@email.com",
				Phone:    "(555) 123-4567",
				Location: "San Francisco, CA",
			},
			Summary: "Experienced software engineer with 8+ years of expertise in full-stack development. Proven track record of building scalable web applications and leading development teams. Passionate about clean code, user experience, and continuous learning.",
			Experience: []WorkExperience{
				{
					ID:        "1",
					Company:   "Tech Corp",
					Position:  "Senior Software Engineer",
					StartDate: "2020-01",
					Current:   true,
					Description: []string{
						"Led development of core platform features serving 1M+ users",
						"Architected microservices infrastructure reducing response time by 40%",
						"Mentored junior developers and established coding standards",
						"Collaborated with product team to define technical requirements",
					},
				},
				{
					ID:        "2",
					Company:   "StartupXYZ",
					Position:  "Full Stack Developer",
					StartDate: "2018-03",
					EndDate:   "2019-12",
					Description: []string{
						"Built responsive web applications using React and Node.js",
						"Implemented CI/CD pipelines improving deployment efficiency by 60%",
						"Developed RESTful APIs handling 10K+ requests per minute",
						"Optimized database queries reducing load times by 50%",
					},
				},
				{
					ID:        "3",
					Company:   "Digital Agency",
					Position:  "Junior Developer",
					StartDate: "2016-06",
					EndDate:   "2018-02",
					Description: []string{
						"Developed custom WordPress themes and plugins",
						"Created responsive websites for 20+ clients",
						"Collaborated with designers to implement pixel-perfect designs",
						"Maintained and updated existing client websites",
					},
				},
			},
			Education: []Education{
				{
					ID:             "1",
					School:         "University of California, Berkeley",
					Degree:         "Bachelor of Science",
					Field:          "Computer Science",
					GraduationDate: "2016-05",
					GPA:            "3.8",
				},
			},
			Skills: []string{
				"JavaScript", "TypeScript", "React", "Node.js", "Python", "PostgreSQL",
				"MongoDB", "AWS", "Docker", "Git", "REST APIs", "GraphQL",
			},
		},
		Format: DefaultFormat(),
	}
}

// DefaultFormat is A4, 11pt Arial at 1.4 line height with 20pt margins.
func DefaultFormat() Format {
	return Format{
		FontFamily:     FontArial,
		FontSize:       11,
		LineHeight:     1.4,
		Margins:        Margins{Top: 20, Right: 20, Bottom: 20, Left: 20},
		PageSize:       units.A4,
		SectionSpacing: 16,
		ItemSpacing:    8,
	}
}

func pageSizeOf(v string) units.PageSize {
	if size, err := units.ParsePageSize(v); err == nil {
		return size
	}
	return units.PageSize(v)
}
