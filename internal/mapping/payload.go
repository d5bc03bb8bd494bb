package mapping

import "github.com/thomas-vilte/zendesk-sync/internal/models"

// FollowLabel is checked on the issue itself, independent of which label
// triggered the run.
const FollowLabel = "Awaiting Verification"

// BuildPayload sets the case status field and adds followerID as a follower
// when the status is not programmer-returned and the issue carries
// FollowLabel. A zero followerID never adds followers.
func BuildPayload(status models.CaseStatus, issue models.Issue, fieldID, followerID int64) models.UpdatePayload {
	payload := models.UpdatePayload{
		CustomFields: []models.CustomFieldValue{
			{ID: fieldID, Value: status},
		},
	}

	if ShouldAddFollower(status, issue) && followerID != 0 {
		payload.Followers = []models.Follower{{UserID: followerID}}
	}

	return payload
}

func ShouldAddFollower(status models.CaseStatus, issue models.Issue) bool {
	return status != models.StatusProgrammerReturned && issue.HasLabel(FollowLabel)
}
