package biz

import (
	"github.com/kudobolivia/frontdesk/internal/biz/usecase"
)

// Usecases contains all usecases
type Usecases struct {
	Session      *usecase.SessionUsecase
	Router       *usecase.RouterUsecase
	Responder    *usecase.ResponderUsecase
	Conversation *usecase.ConversationUsecase
}
