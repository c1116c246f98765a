package memory

import "example.com/extracurricular/internal/domain"

// seed loads the fixed Mergington High School activity catalog.
func (r *Repository) seed() {
	catalog := []domain.Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		{
			Name:            "Basketball Team",
			Description:     "Competitive basketball training and inter-school games",
			Schedule:        "Wednesdays, 4:00 PM - 6:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"james@mergington.edu", "william@mergington.edu"},
		},
		{
			Name:            "Swimming Team",
			Description:     "Swim practice and competitive meets",
			Schedule:        "Tuesdays and Thursdays, 6:00 AM - 7:30 AM",
			MaxParticipants: 18,
			Participants:    []string{"ava@mergington.edu"},
		},
		{
			Name:            "Art Club",
			Description:     "Explore drawing, painting, and other visual arts",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"amelia@mergington.edu"},
		},
		{
			Name:            "Drama Club",
			Description:     "Act, direct, and produce school theater performances",
			Schedule:        "Mondays and Wednesdays, 3:30 PM - 5:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"mia@mergington.edu", "noah@mergington.edu"},
		},
		{
			Name:            "Math Club",
			Description:     "Problem solving sessions and math olympiad preparation",
			Schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 10,
			Participants:    []string{"liam@mergington.edu"},
		},
		{
			Name:            "Debate Team",
			Description:     "Develop argumentation skills and compete in debate tournaments",
			Schedule:        "Fridays, 4:00 PM - 5:30 PM",
			MaxParticipants: 12,
			Participants:    []string{"charlotte@mergington.edu", "henry@mergington.edu"},
		},
	}

	for _, activity := range catalog {
		r.Put(activity)
	}
}
