package github

import (
	"context"
	"fmt"
	"time"

	"github.com/Ba4bes/moodpoodle/internal/domain"
	"github.com/shurcooL/githubv4"
)

const calendarDateLayout = "2006-01-02"

// contributionQuery mirrors the contributionsCollection calendar plus the
// owned-repository count for one account.
type contributionQuery struct {
	User struct {
		Repositories struct {
			TotalCount githubv4.Int
		} `graphql:"repositories(ownerAffiliations: OWNER)"`
		ContributionsCollection struct {
			ContributionCalendar struct {
				Weeks []struct {
					ContributionDays []struct {
						Date              githubv4.String
						ContributionCount githubv4.Int
					}
				}
			}
		}
	} `graphql:"user(login: $login)"`
}

// FetchActivity pulls the contribution calendar and repository count for the
// account. The calendar span is whatever GitHub returns (a year of weeks);
// windowing happens in the aggregator.
func (c *Client) FetchActivity(ctx context.Context, username string) (*domain.ContributionCalendar, error) {
	var q contributionQuery
	vars := map[string]any{
		"login": githubv4.String(username),
	}

	if err := c.graphql.Query(ctx, &q, vars); err != nil {
		return nil, fmt.Errorf("contribution query for %s: %w", username, err)
	}

	cal := &domain.ContributionCalendar{
		RepoCount: int(q.User.Repositories.TotalCount),
	}

	for _, week := range q.User.ContributionsCollection.ContributionCalendar.Weeks {
		for _, day := range week.ContributionDays {
			date, err := time.Parse(calendarDateLayout, string(day.Date))
			if err != nil {
				return nil, fmt.Errorf("malformed calendar date %q: %w", day.Date, err)
			}
			cal.Days = append(cal.Days, domain.ContributionDay{
				Date:  date,
				Count: int(day.ContributionCount),
			})
		}
	}

	return cal, nil
}
