// main is the AWS Lambda entry point for the student functions.
//
// One function serves both routes behind an API Gateway proxy integration:
//
//	POST /api/InsertStudentData
//	GET  /api/GetStudentData?id=1
//
// Authorization is left to API Gateway (API keys / authorizers), so unlike
// the HTTP host there is no function-key check here. Configuration comes from
// the function's environment variables (ENV, DATABASE_DRIVER, DATABASE_DSN).
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/aanand-mishra/student-functions/internal/config"
	"github.com/aanand-mishra/student-functions/internal/errs"
	"github.com/aanand-mishra/student-functions/internal/logger"
	"github.com/aanand-mishra/student-functions/internal/storage/sqldb"
	"github.com/aanand-mishra/student-functions/internal/student"
	"github.com/aanand-mishra/student-functions/internal/types"
	"github.com/aanand-mishra/student-functions/internal/utils/response"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
)

// Functions is what the Lambda handler needs from internal/student.Service.
type Functions interface {
	Insert(ctx context.Context, body []byte) error
	Lookup(ctx context.Context, rawID string) (types.StudentView, error)
}

type handlerFunc func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

func newHandler(fns Functions, log *slog.Logger) handlerFunc {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		// The database call runs to completion even if the invocation's
		// context is cancelled.
		ctx = context.WithoutCancel(ctx)

		switch {
		case event.HTTPMethod == http.MethodPost && strings.HasSuffix(event.Path, "/InsertStudentData"):
			body, err := requestBody(event)
			if err != nil {
				return failure(log, err), nil
			}
			if err := fns.Insert(ctx, body); err != nil {
				return failure(log, err), nil
			}
			return textResponse(http.StatusOK, student.MsgInserted), nil

		case event.HTTPMethod == http.MethodGet && strings.HasSuffix(event.Path, "/GetStudentData"):
			view, err := fns.Lookup(ctx, event.QueryStringParameters["id"])
			if err != nil {
				return failure(log, err), nil
			}
			return jsonResponse(view)

		default:
			log.Warn("no route", slog.String("method", event.HTTPMethod), slog.String("path", event.Path))
			return textResponse(http.StatusNotFound, "Not found."), nil
		}
	}
}

func requestBody(event events.APIGatewayProxyRequest) ([]byte, error) {
	if !event.IsBase64Encoded {
		return []byte(event.Body), nil
	}
	body, err := base64.StdEncoding.DecodeString(event.Body)
	if err != nil {
		return nil, errs.MalformedRequest(student.MsgBodyMissing, err)
	}
	return body, nil
}

// failure renders err as its client message and logs the request error kind.
func failure(log *slog.Logger, err error) events.APIGatewayProxyResponse {
	log.Warn("request failed",
		slog.String("kind", errs.KindOf(err).String()),
		slog.String("error", err.Error()))
	return textResponse(errs.StatusOf(err), response.Message(err))
}

func textResponse(status int, msg string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": response.ContentTypeText},
		Body:       msg,
	}
}

func jsonResponse(view types.StudentView) (events.APIGatewayProxyResponse, error) {
	b, err := json.Marshal(view)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": response.ContentTypeJSON},
		Body:       string(b),
	}, nil
}

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Env, os.Stdout)
	slog.SetDefault(log)

	// Opened once per execution environment and reused across warm
	// invocations; each invocation still takes its own connection.
	db, err := sqldb.New(context.Background(), cfg)
	if err != nil {
		panic("failed to initialise storage: " + err.Error())
	}

	awslambda.Start(newHandler(student.New(db, log), log))
}
