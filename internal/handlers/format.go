package handlers

import (
	"github.com/dmarkova/slacklite/internal/handlers/dto"
	"github.com/dmarkova/slacklite/internal/models"
	"github.com/google/uuid"
)

func formatMessage(msg *models.Message) dto.MessageResponse {
	resp := dto.MessageResponse{
		ID:              msg.ID,
		Content:         msg.Content,
		AuthorID:        msg.AuthorID,
		ChannelID:       msg.ChannelID,
		ReceiverID:      msg.ReceiverID,
		ThreadID:        msg.ThreadID,
		IsThreadStarter: msg.IsThreadStarter,
		CreatedAt:       msg.CreatedAt,
	}
	if msg.Author.ID != uuid.Nil {
		resp.Author = &dto.UserInfo{
			ID:    msg.Author.ID,
			Name:  msg.Author.Name,
			Image: msg.Author.Image,
		}
	}
	return resp
}

func formatMessages(msgs []models.Message) []dto.MessageResponse {
	out := make([]dto.MessageResponse, len(msgs))
	for i := range msgs {
		out[i] = formatMessage(&msgs[i])
	}
	return out
}
