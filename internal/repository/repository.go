package repository

import "voting_web/internal/storage"

type Repositories struct {
	User UserRepository
	Poll PollRepository
	Vote VoteRepository
}

func NewRepositories(db *storage.PostgresDB) *Repositories {
	return &Repositories{
		User: NewUserRepository(db),
		Poll: NewPollRepository(db),
		Vote: NewVoteRepository(db),
	}
}
