package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"

	"procureBack/internal/models"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.authenticate)
	buyerMiddleware := authMiddleware.Append(app.requireType(models.TypeBuyer))
	sellerMiddleware := authMiddleware.Append(app.requireType(models.TypeSeller))

	mux := pat.New()

	// Auth
	mux.Post("/auth/sign-in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/users/sub-user", authMiddleware.ThenFunc(app.userHandler.CreateSubUser))
	mux.Get("/users/me", authMiddleware.ThenFunc(app.userHandler.Me))

	// Tenders. Fixed paths are registered before /tenders/:id so pat does not
	// swallow them as ids.
	mux.Post("/tenders/create", buyerMiddleware.ThenFunc(app.tenderHandler.CreateTender))
	mux.Get("/tenders/my-tenders", buyerMiddleware.ThenFunc(app.tenderHandler.MyTenders))
	mux.Get("/tenders/my-invitations", sellerMiddleware.ThenFunc(app.tenderHandler.MyInvitations))
	mux.Get("/tenders/invitation/:token", standardMiddleware.ThenFunc(app.tenderHandler.PublicTenderView))
	mux.Get("/tenders/:id", buyerMiddleware.ThenFunc(app.tenderHandler.GetTender))
	mux.Put("/tenders/:id", buyerMiddleware.ThenFunc(app.tenderHandler.UpdateTender))

	// Quotations
	mux.Post("/quotations/submit", sellerMiddleware.ThenFunc(app.quotationHandler.SubmitQuotation))
	mux.Get("/quotations/my-quotation/:token/:tenderId", sellerMiddleware.ThenFunc(app.quotationHandler.MyQuotation))
	mux.Get("/quotations/my-quotation/:token", sellerMiddleware.ThenFunc(app.quotationHandler.MyQuotation))
	mux.Get("/quotations/get-submitted", sellerMiddleware.ThenFunc(app.quotationHandler.GetSubmitted))
	mux.Get("/quotations/comparison/:tenderId", buyerMiddleware.ThenFunc(app.quotationHandler.TenderComparison))
	mux.Post("/quotations/select-supplier", buyerMiddleware.ThenFunc(app.quotationHandler.SelectSupplier))
	mux.Post("/quotations/:quotationId/upload-document", sellerMiddleware.ThenFunc(app.quotationHandler.UploadDocument))

	return standardMiddleware.Then(mux)
}
