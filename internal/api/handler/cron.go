package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sellthrough-api/pkg/apiErrors"
	"github.com/vfg2006/sellthrough-api/pkg/log"
)

const CronJobTypeInbox = "inbox"

// CronJob é um agendamento que pode ser disparado manualmente
type CronJob interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// CronJobServices associa o tipo da URL ao agendamento
type CronJobServices map[string]CronJob

// RunCronJob executa manualmente um agendamento
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		job, ok := services[cronType]
		if !ok || job == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido", map[string]string{"type": cronType})
			return
		}

		log.ForContext(r.Context()).WithField("type", cronType).Info("Execução manual de cron job solicitada")
		job.TriggerManualSync()

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	})
}

// GetCronStatus retorna o status de todos os agendamentos
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any, len(services))
		for name, job := range services {
			if job != nil {
				status[name] = job.GetStatus()
			}
		}

		writeJSON(w, r, http.StatusOK, status)
	})
}
