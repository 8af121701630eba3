// A job acceptance is decided synchronously by the database; everything
// that follows it is reactive. This worker consumes the job.accepted topic
// to drop the cached open-jobs listing and to alert the operations mailbox,
// so neither concern sits on the accept request path.
package worker

import (
	"encoding/json"
	"log"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/kaamwala/kaamwala/internal/cache"
	"github.com/kaamwala/kaamwala/internal/handler"
	"github.com/kaamwala/kaamwala/internal/stream"
)

func (wk *Worker) JobAcceptedWorker() {
	consumer, err := wk.KafkaStream.CreateConsumer(&stream.StreamConsumer{
		GroupId: jobAcceptedGroupID,
		Topic:   stream.JobAcceptedTopic,
	})

	if err != nil {
		log.Fatalf("Error creating consumer: %v", err)
	}
	defer consumer.Close()

	for {
		select {
		case <-wk.Ctx.Done():
			log.Println("JobAcceptedWorker received cancellation signal, shutting down...")
			return
		default:
			event := consumer.Poll(100)
			switch e := event.(type) {
			case *kafka.Message:
				var jobEvent *handler.JobEvent
				if err := json.Unmarshal(e.Value, &jobEvent); err != nil {
					log.Printf("Error decoding job event: %v", err)
					continue
				}

				wk.refreshOpenJobs()
				wk.sendJobAcceptedAlert(jobEvent)
			case kafka.Error:
				log.Printf("Error: %v\n", e)
			case *kafka.AssignedPartitions:
				consumer.Assign(e.Partitions)
			case *kafka.RevokedPartitions:
				consumer.Unassign()
			}
		}
	}
}

func (wk *Worker) refreshOpenJobs() {
	if wk.Cache == nil {
		return
	}

	if err := wk.Cache.Delete(cache.OpenJobsKey); err != nil {
		log.Printf("Error invalidating open jobs cache: %v", err)
	}
}

func (wk *Worker) sendJobAcceptedAlert(jobEvent *handler.JobEvent) bool {
	if wk.NotificationEmail == "" {
		return false
	}

	job, found, err := wk.DB.Job().GetOne(jobEvent.JobID)
	if err != nil || !found {
		log.Printf("Error finding accepted job %d: %v", jobEvent.JobID, err)
		return false
	}

	jobWorker, found, err := wk.DB.Worker().GetOne(jobEvent.WorkerID)
	if err != nil || !found {
		log.Printf("Error finding accepting worker %d: %v", jobEvent.WorkerID, err)
		return false
	}

	customer, found, err := wk.DB.Customer().GetOne(job.CustomerID)
	if err != nil || !found {
		log.Printf("Error finding job owner %d: %v", job.CustomerID, err)
		return false
	}

	wk.Helper.BackgroundTask(nil, func() error {
		emailData := wk.Helper.NewEmailData()
		emailData["JobID"] = job.ID
		emailData["JobTitle"] = job.Title
		emailData["Budget"] = job.Budget
		emailData["WorkerName"] = jobWorker.FullName
		emailData["WorkerPhone"] = jobWorker.Phone
		emailData["CustomerName"] = customer.FullName
		emailData["CustomerPhone"] = customer.Phone

		err := wk.Mailer.Send(wk.NotificationEmail, emailData, "job-accepted-alert.tmpl")
		if err != nil {
			log.Printf("Error sending job accepted alert: %v", err)
			return err
		}

		return nil
	})

	return true
}
