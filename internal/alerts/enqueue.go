package alerts

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
)

func enqueue(taskType string, payload any) error {
	if client == nil {
		return fmt.Errorf("alerts client not initialized")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	task := asynq.NewTask(taskType, data)
	info, err := client.Enqueue(task,
		asynq.Queue("emails"),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return err
	}
	log.Printf("[notify] enqueued %s id=%s", taskType, info.ID)
	return nil
}

// EnqueueWelcomeEmail schedules the signup greeting.
func EnqueueWelcomeEmail(userID, email, name string) error {
	return enqueue(TaskWelcomeEmail, WelcomeEmailPayload{
		UserID: userID,
		Name:   name,
		Email:  email,
		Envelope: EmailEnvelope{
			To:      email,
			Subject: "Welcome to HomeServe",
			Body: fmt.Sprintf("Hi %s,\n\nYour HomeServe account is ready. "+
				"Browse services and book a professional whenever you need one.\n\n- The HomeServe team", name),
		},
		SentAt: time.Now(),
	})
}

// EnqueuePasswordReset schedules the reset link email.
func EnqueuePasswordReset(userID, email, resetURL, name string) error {
	return enqueue(TaskPasswordReset, PasswordResetPayload{
		UserID:   userID,
		Email:    email,
		ResetURL: resetURL,
		Envelope: EmailEnvelope{
			To:      email,
			Subject: "Reset your HomeServe password",
			Body: fmt.Sprintf("Hi %s,\n\nSomeone asked to reset the password for this account. "+
				"If that was you, open the link below within 30 minutes:\n\n%s\n\n"+
				"If it wasn't you, ignore this email.", name, resetURL),
		},
		Requested: time.Now(),
	})
}

// EnqueueRequestNew notifies a worker about a fresh booking.
func EnqueueRequestNew(requestID, userID, workerID, serviceType, workerEmail string) error {
	return enqueue(TaskRequestNew, RequestNewPayload{
		RequestID:   requestID,
		UserID:      userID,
		WorkerID:    workerID,
		ServiceType: serviceType,
		Email:       workerEmail,
		Envelope: EmailEnvelope{
			To:      workerEmail,
			Subject: "New service request",
			Body: fmt.Sprintf("You have a new %s request waiting in your dashboard. "+
				"Accept or reject it from the pending tab.", serviceType),
		},
		SentAt: time.Now(),
	})
}

// EnqueueRequestStatus notifies the customer after the worker moves a request.
func EnqueueRequestStatus(requestID, userID, workerID, status, customerEmail string) error {
	var subject, body string
	switch status {
	case "accepted":
		subject = "Your request was accepted"
		body = "Good news: your service request was accepted. The professional will arrive at the scheduled time."
	case "rejected":
		subject = "Your request was declined"
		body = "Unfortunately the professional declined your request. You can book another worker from the services page."
	case "completed":
		subject = "Your request is complete"
		body = "Your service request was marked complete. If everything went well, consider leaving a review."
	default:
		subject = "Your request was updated"
		body = fmt.Sprintf("Your service request moved to %q.", status)
	}
	return enqueue(TaskRequestStatus, RequestStatusPayload{
		RequestID: requestID,
		UserID:    userID,
		WorkerID:  workerID,
		Status:    status,
		Email:     customerEmail,
		Envelope: EmailEnvelope{
			To:      customerEmail,
			Subject: subject,
			Body:    body,
		},
		SentAt: time.Now(),
	})
}
