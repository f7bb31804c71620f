// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - CastVoteRequest: projectId
  - CastIPVoteRequest: projectId, optional ip

projectId decodes from a JSON number or a numeric string (ProjectRef).

# Response Types

  - VotesResponse: votes
  - CastVoteResponse: success, votes
  - VoteStatusResponse: votes, voted
  - ProjectListResponse: projects, page, page_size, total, has_more
  - AdminVoteResponse: project_id, votes, voter_count
  - ErrorResponse: error, message

# Domain Types

  - Project / Member: a submitted hackathon project and its team
  - VoteRecord: vote count plus voter IP fingerprints
  - VoteRanking / RankedProject: one leaderboard row

# Themes

Theme tags map to display names:

	1 = "赛博 AI 20X5"
	2 = "重新发现社会"
	3 = "科技改变生活"

Unknown tags render as "主题N"; a project without tags as "未知主题".
*/
package models
