package delivery

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	messagingdto "recruitbridge-backend/internal/messaging/dto"
	"recruitbridge-backend/internal/messaging/usecase"

	"github.com/gin-gonic/gin"
)

// SignatureVerifier checks a webhook's signing triple. The mailgun client
// implements it; a nil verifier accepts everything.
type SignatureVerifier interface {
	VerifySignature(timestamp, token, signature string) bool
}

type MessagingHandler struct {
	messagingUsecase usecase.MessagingUsecase
	verifier         SignatureVerifier
}

func NewMessagingHandler(messagingUsecase usecase.MessagingUsecase, verifier SignatureVerifier) *MessagingHandler {
	return &MessagingHandler{
		messagingUsecase: messagingUsecase,
		verifier:         verifier,
	}
}

// HandleInboundWebhook is the provider-facing ingestion endpoint. It is the
// ack-first boundary: once the payload parses and the signature checks out,
// the response is 200 no matter what happens inside processing, because a
// non-2xx would make the provider redeliver and multiply the work. Failures
// past that point are logged for diagnostics instead.
func (h *MessagingHandler) HandleInboundWebhook(c *gin.Context) {
	var req messagingdto.InboundWebhookRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.verifier != nil && !h.verifier.VerifySignature(req.Timestamp, req.Token, req.Signature) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid webhook signature"})
		return
	}

	ts := time.Now()
	if req.Timestamp != "" {
		if epoch, err := strconv.ParseInt(req.Timestamp, 10, 64); err == nil {
			ts = time.Unix(epoch, 0)
		}
	}

	event := &usecase.InboundEvent{
		Sender:    req.Sender,
		Recipient: req.Recipient,
		Subject:   req.Subject,
		BodyPlain: req.BodyPlain,
		BodyHTML:  req.BodyHTML,
		MessageID: req.MessageID,
		Timestamp: ts,
	}

	if err := h.messagingUsecase.ProcessInbound(event); err != nil {
		log.Printf("[ERROR] inbound webhook processing failed for message %s: %v", req.MessageID, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (h *MessagingHandler) SendMessage(c *gin.Context) {
	var req messagingdto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userID")
	result, err := h.messagingUsecase.SendMessage(c.Request.Context(), userID, &usecase.SendInput{
		To:      req.To,
		Subject: req.Subject,
		Text:    req.Text,
		HTML:    req.HTML,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrNoIdentity) {
			c.JSON(http.StatusBadRequest, messagingdto.SendMessageResponse{OK: false, Detail: err.Error()})
			return
		}
		// Provider diagnostics go back to the caller unmodified so a
		// credential problem is distinguishable from a transient failure.
		c.JSON(http.StatusBadGateway, messagingdto.SendMessageResponse{OK: false, Detail: err.Error()})
		return
	}

	c.JSON(http.StatusOK, messagingdto.SendMessageResponse{OK: true, MessageID: result.MessageID, From: result.From})
}

func (h *MessagingHandler) GetThreads(c *gin.Context) {
	userID := c.GetString("userID")
	threads, err := h.messagingUsecase.ListThreads(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, messagingdto.ThreadsResponse{Threads: threads})
}

func (h *MessagingHandler) GetThreadMessages(c *gin.Context) {
	userID := c.GetString("userID")
	threadID := c.Param("id")

	messages, err := h.messagingUsecase.ListMessages(userID, threadID)
	if err != nil {
		if errors.Is(err, usecase.ErrThreadNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "thread not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, messagingdto.MessagesResponse{Messages: messages})
}

func (h *MessagingHandler) MarkThreadRead(c *gin.Context) {
	userID := c.GetString("userID")
	threadID := c.Param("id")

	if err := h.messagingUsecase.MarkThreadRead(userID, threadID); err != nil {
		if errors.Is(err, usecase.ErrThreadNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "thread not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "thread marked as read"})
}
