package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"menvo.backend/internal/domain/entities"
	"menvo.backend/internal/interfaces/http/response"
)

type subscriptionService interface {
	SubscribeNewsletter(ctx context.Context, input *entities.NewsletterInput) (*entities.SubscribeResult, error)
	JoinWaitingList(ctx context.Context, input *entities.WaitingListInput) (*entities.SubscribeResult, error)
}

// SubscriptionHandler handles the newsletter and the waiting list
type SubscriptionHandler struct {
	subscriptionUsecase subscriptionService
}

func NewSubscriptionHandler(subscriptionUsecase subscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionUsecase: subscriptionUsecase}
}

// Newsletter subscribes an email. Subscribing twice is not an error.
// POST /api/v1/newsletter
func (h *SubscriptionHandler) Newsletter(c *gin.Context) {
	var input entities.NewsletterInput
	if !bindJSON(c, &input) {
		return
	}

	result, err := h.subscriptionUsecase.SubscribeNewsletter(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, subscribeStatus(result), result)
}

// WaitingList records interest ahead of launch
// POST /api/v1/waiting-list
func (h *SubscriptionHandler) WaitingList(c *gin.Context) {
	var input entities.WaitingListInput
	if !bindJSON(c, &input) {
		return
	}

	result, err := h.subscriptionUsecase.JoinWaitingList(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, subscribeStatus(result), result)
}

func subscribeStatus(result *entities.SubscribeResult) int {
	if result.AlreadySubscribed {
		return http.StatusOK
	}
	return http.StatusCreated
}
