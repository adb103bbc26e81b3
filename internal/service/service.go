package service

import (
	"voting_web/internal/models"
	"voting_web/internal/repository"
)

type Services struct {
	User        *UserService
	Poll        *PollService
	Vote        *VoteService
	Broadcaster *ResultsBroadcaster
}

func NewServices(repos *repository.Repositories, defaultPollStatus models.PollStatus) *Services {
	broadcaster := NewResultsBroadcaster()

	userService := NewUserService(repos.User)
	pollService := NewPollService(repos.Poll, repos.Vote, repos.User, broadcaster, defaultPollStatus)
	voteService := NewVoteService(repos.Poll, repos.Vote, broadcaster)
	return &Services{
		User:        userService,
		Poll:        pollService,
		Vote:        voteService,
		Broadcaster: broadcaster,
	}
}
