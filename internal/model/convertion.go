package model

import (
	"github.com/quinty-io/backend/internal/entity"
)

func ConvertSubmissions(submissions []entity.BountySubmission) []Submission {
	result := make([]Submission, 0, len(submissions))
	for _, sub := range submissions {
		result = append(result, Submission{
			Submitter: sub.Submitter,
			IpfsCid:   sub.IpfsCid,
			Deposit:   sub.Deposit,
			Timestamp: sub.Timestamp,
		})
	}
	return result
}

func ConvertBounty(bounty *entity.Bounty) Bounty {
	if bounty == nil {
		return Bounty{}
	}

	return Bounty{
		ID:              bounty.OnChainID,
		Creator:         bounty.Creator,
		Title:           bounty.Title,
		Description:     string(bounty.Description),
		MetadataCid:     bounty.MetadataCid,
		Token:           bounty.Token,
		TotalAmount:     bounty.TotalAmount,
		Prizes:          bounty.Prizes,
		OpenDeadline:    bounty.OpenDeadline,
		JudgingDeadline: bounty.JudgingDeadline,
		SlashPercent:    bounty.SlashPercent,
		Status:          string(bounty.Status),
		SubmissionCount: bounty.SubmissionCount,
		TotalDeposits:   bounty.TotalDeposits,
		Winners:         bounty.Winners,
		Submissions:     ConvertSubmissions(bounty.Submissions),
	}
}

func ConvertEntries(entries []entity.QuestEntry) []Entry {
	result := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, Entry{
			Solver:       entry.Solver,
			IpfsProofCid: entry.IpfsProofCid,
			Timestamp:    entry.Timestamp,
			Status:       string(entry.Status),
			Feedback:     entry.Feedback,
		})
	}
	return result
}

func ConvertQuest(quest *entity.Quest) Quest {
	if quest == nil {
		return Quest{}
	}

	return Quest{
		ID:              quest.OnChainID,
		Creator:         quest.Creator,
		Title:           quest.Title,
		Description:     string(quest.Description),
		TotalAmount:     quest.TotalAmount,
		PerQualifier:    quest.PerQualifier,
		MaxQualifiers:   quest.MaxQualifiers,
		QualifiersCount: quest.QualifiersCount,
		Deadline:        quest.Deadline,
		CreatedAt:       quest.ChainCreatedAt,
		Resolved:        quest.Resolved,
		Cancelled:       quest.Cancelled,
		Requirements:    quest.Requirements,
		ImageUrl:        quest.ImageUrl,
		Entries:         ConvertEntries(quest.Entries),
	}
}

func ConvertVotes(votes []entity.DisputeVote) []Vote {
	result := make([]Vote, 0, len(votes))
	for _, vote := range votes {
		result = append(result, Vote{
			Voter:        vote.Voter,
			Stake:        vote.Stake,
			RankedSubIds: vote.RankedSubIds,
		})
	}
	return result
}

func ConvertDispute(dispute *entity.Dispute) Dispute {
	if dispute == nil {
		return Dispute{}
	}

	return Dispute{
		ID:        dispute.OnChainID,
		BountyID:  dispute.BountyOnChainID,
		IsExpiry:  dispute.IsExpiry,
		Amount:    dispute.Amount,
		VotingEnd: dispute.VotingEnd,
		VoteCount: dispute.VoteCount,
		Resolved:  dispute.Resolved,
		Votes:     ConvertVotes(dispute.Votes),
	}
}

func ConvertUser(user *entity.User, includeSensitive bool) User {
	if user == nil {
		return User{}
	}

	result := User{
		ID:            user.ID,
		WalletAddress: user.WalletAddress,
		Name:          user.Name,
		IsNewUser:     user.IsNewUser,
	}

	if includeSensitive {
		result.Role = user.Role
	}

	return result
}

func ConvertAchievements(achievements []entity.Achievement) []Achievement {
	result := make([]Achievement, 0, len(achievements))
	for _, achievement := range achievements {
		result = append(result, Achievement{
			TokenID:    achievement.TokenID,
			Name:       achievement.Name,
			UnlockedAt: achievement.UnlockedAt,
		})
	}
	return result
}
