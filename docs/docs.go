// Package docs holds the swagger document served at /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/accounts": {
			"post": {
				"summary": "Register the caller's account",
				"tags": [
					"accounts"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/controllers.AccountSuccessResponse"
						}
					},
					"400": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"401": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"409": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/controllers.RegisterRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/accounts/me": {
			"get": {
				"summary": "Get current account",
				"tags": [
					"accounts"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/controllers.AccountSuccessResponse"
						}
					},
					"401": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"404": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"502": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/invites": {
			"post": {
				"summary": "Create a single-use invite",
				"tags": [
					"invites"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/controllers.IssuedInviteSuccessResponse"
						}
					},
					"400": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"401": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"403": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"409": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/controllers.CreateInviteRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/invites/validate": {
			"post": {
				"summary": "Validate a single-use invite token",
				"tags": [
					"invites"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/controllers.EphemeralInviteSuccessResponse"
						}
					},
					"404": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"409": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"429": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/controllers.TokenRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/invites/redeem": {
			"post": {
				"summary": "Redeem a single-use invite",
				"tags": [
					"invites"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/controllers.MembershipSuccessResponse"
						}
					},
					"401": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"404": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"409": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"429": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/controllers.RedeemInviteRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/invites/inspect": {
			"post": {
				"summary": "Resolve an invite secret",
				"tags": [
					"invites"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/controllers.InviteSuccessResponse"
						}
					},
					"404": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/controllers.TokenRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/pro/invite-codes/{role}": {
			"get": {
				"summary": "Get or create the invite code for a role",
				"tags": [
					"invite-codes"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/controllers.IssuedCodeSuccessResponse"
						}
					},
					"400": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"403": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"409": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"in": "path",
						"name": "role",
						"required": true,
						"description": "STAFF or ATHLETE"
					}
				],
				"consumes": [
					"application/json"
				]
			},
			"patch": {
				"summary": "Enable or disable the invite code for a role",
				"tags": [
					"invite-codes"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/controllers.PersistentInviteSuccessResponse"
						}
					},
					"400": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"403": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"404": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"in": "path",
						"name": "role",
						"required": true,
						"description": "STAFF or ATHLETE"
					},
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/controllers.SetActiveRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/pro/invite-codes/{role}/regenerate": {
			"post": {
				"summary": "Regenerate the invite code for a role",
				"tags": [
					"invite-codes"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/controllers.IssuedCodeSuccessResponse"
						}
					},
					"400": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"403": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"409": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"in": "path",
						"name": "role",
						"required": true,
						"description": "STAFF or ATHLETE"
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/invite-codes/validate": {
			"post": {
				"summary": "Validate an invite code",
				"tags": [
					"invite-codes"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/controllers.PersistentInviteSuccessResponse"
						}
					},
					"404": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"409": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"429": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/controllers.CodeRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/invite-codes/redeem": {
			"post": {
				"summary": "Redeem an invite code",
				"tags": [
					"invite-codes"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/controllers.MembershipSuccessResponse"
						}
					},
					"401": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"404": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"409": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"429": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/controllers.RedeemCodeRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/pro/team": {
			"get": {
				"summary": "Get the caller's team",
				"tags": [
					"team"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/controllers.TeamSuccessResponse"
						}
					},
					"401": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"403": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"in": "query",
						"name": "page"
					},
					{
						"type": "integer",
						"in": "query",
						"name": "page_size"
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/pro/team/{memberID}": {
			"delete": {
				"summary": "Remove a member from the caller's team",
				"tags": [
					"team"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"400": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"403": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"in": "path",
						"name": "memberID",
						"required": true
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/webhooks/payments": {
			"post": {
				"summary": "Payment completion webhook",
				"tags": [
					"webhooks"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/controllers.PaymentEventSuccessResponse"
						}
					},
					"400": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"401": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					},
					"404": {
						"description": "error envelope",
						"schema": {
							"$ref": "#/definitions/helpers.APIResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"in": "header",
						"name": "X-Webhook-Secret"
					},
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/controllers.PaymentEventRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			}
		}
	},
	"definitions": {
		"helpers.APIError": {
			"type": "object",
			"properties": {
				"code": {
					"type": "string"
				},
				"message": {
					"type": "string"
				}
			}
		},
		"helpers.APIResponse": {
			"type": "object",
			"properties": {
				"data": {
					"type": "object"
				},
				"error": {
					"$ref": "#/definitions/helpers.APIError"
				}
			}
		},
		"helpers.PaginationMeta": {
			"type": "object",
			"properties": {
				"page": {
					"type": "integer"
				},
				"page_size": {
					"type": "integer"
				},
				"total": {
					"type": "integer"
				},
				"total_pages": {
					"type": "integer"
				}
			}
		},
		"domain.Account": {
			"type": "object",
			"properties": {
				"uid": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"firstName": {
					"type": "string"
				},
				"lastName": {
					"type": "string"
				},
				"role": {
					"type": "string"
				},
				"proId": {
					"type": "string"
				},
				"proStatus": {
					"type": "string"
				},
				"createdAt": {
					"type": "string",
					"format": "date-time"
				},
				"updatedAt": {
					"type": "string",
					"format": "date-time"
				},
				"claimsRepairedAt": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"domain.EphemeralInvite": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"proId": {
					"type": "string"
				},
				"role": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"expiresAt": {
					"type": "string",
					"format": "date-time"
				},
				"claimed": {
					"type": "boolean"
				},
				"claimedBy": {
					"type": "string"
				},
				"claimedAt": {
					"type": "string",
					"format": "date-time"
				},
				"createdAt": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"domain.PersistentInvite": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"proId": {
					"type": "string"
				},
				"role": {
					"type": "string"
				},
				"maxRedemptions": {
					"type": "integer"
				},
				"redeemedCount": {
					"type": "integer"
				},
				"active": {
					"type": "boolean"
				},
				"redemptions": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"accountId": {
								"type": "string"
							},
							"redeemedAt": {
								"type": "string",
								"format": "date-time"
							}
						}
					}
				},
				"createdAt": {
					"type": "string",
					"format": "date-time"
				},
				"updatedAt": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"domain.SeatCount": {
			"type": "object",
			"properties": {
				"proId": {
					"type": "string"
				},
				"staffCount": {
					"type": "integer"
				},
				"athleteCount": {
					"type": "integer"
				},
				"updatedAt": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"domain.Membership": {
			"type": "object",
			"properties": {
				"uid": {
					"type": "string"
				},
				"role": {
					"type": "string"
				},
				"proId": {
					"type": "string"
				}
			}
		},
		"domain.IssuedEphemeralInvite": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"token": {
					"type": "string"
				},
				"expiresAt": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"domain.IssuedPersistentInvite": {
			"type": "object",
			"properties": {
				"invite": {
					"$ref": "#/definitions/domain.PersistentInvite"
				},
				"inviteCode": {
					"type": "string"
				}
			}
		},
		"domain.Invite": {
			"type": "object",
			"properties": {
				"kind": {
					"type": "string"
				},
				"ephemeral": {
					"$ref": "#/definitions/domain.EphemeralInvite"
				},
				"persistent": {
					"$ref": "#/definitions/domain.PersistentInvite"
				}
			}
		},
		"controllers.ProfileRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"firstName": {
					"type": "string"
				},
				"lastName": {
					"type": "string"
				}
			}
		},
		"controllers.RegisterRequest": {
			"type": "object",
			"properties": {
				"role": {
					"type": "string"
				},
				"profile": {
					"$ref": "#/definitions/controllers.ProfileRequest"
				}
			}
		},
		"controllers.CreateInviteRequest": {
			"type": "object",
			"properties": {
				"role": {
					"type": "string"
				},
				"email": {
					"type": "string"
				}
			}
		},
		"controllers.TokenRequest": {
			"type": "object",
			"properties": {
				"token": {
					"type": "string"
				}
			}
		},
		"controllers.RedeemInviteRequest": {
			"type": "object",
			"properties": {
				"token": {
					"type": "string"
				},
				"profile": {
					"$ref": "#/definitions/controllers.ProfileRequest"
				}
			}
		},
		"controllers.SetActiveRequest": {
			"type": "object",
			"properties": {
				"active": {
					"type": "boolean"
				}
			}
		},
		"controllers.CodeRequest": {
			"type": "object",
			"properties": {
				"code": {
					"type": "string"
				}
			}
		},
		"controllers.RedeemCodeRequest": {
			"type": "object",
			"properties": {
				"inviteCode": {
					"type": "string"
				},
				"profile": {
					"$ref": "#/definitions/controllers.ProfileRequest"
				}
			}
		},
		"controllers.PaymentEventRequest": {
			"type": "object",
			"properties": {
				"accountId": {
					"type": "string"
				},
				"role": {
					"type": "string"
				},
				"proId": {
					"type": "string"
				},
				"paymentKind": {
					"type": "string"
				}
			}
		},
		"controllers.PaymentEventResult": {
			"type": "object",
			"properties": {
				"handled": {
					"type": "boolean"
				},
				"account": {
					"$ref": "#/definitions/domain.Account"
				}
			}
		},
		"controllers.TeamResponse": {
			"type": "object",
			"properties": {
				"proId": {
					"type": "string"
				},
				"members": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.Account"
					}
				},
				"seats": {
					"$ref": "#/definitions/domain.SeatCount"
				},
				"staffLimit": {
					"type": "integer"
				},
				"athleteLimit": {
					"type": "integer"
				},
				"pagination": {
					"$ref": "#/definitions/helpers.PaginationMeta"
				}
			}
		},
		"controllers.AccountSuccessResponse": {
			"type": "object",
			"properties": {
				"data": {
					"$ref": "#/definitions/domain.Account"
				},
				"error": {
					"$ref": "#/definitions/helpers.APIError"
				}
			}
		},
		"controllers.IssuedInviteSuccessResponse": {
			"type": "object",
			"properties": {
				"data": {
					"$ref": "#/definitions/domain.IssuedEphemeralInvite"
				},
				"error": {
					"$ref": "#/definitions/helpers.APIError"
				}
			}
		},
		"controllers.EphemeralInviteSuccessResponse": {
			"type": "object",
			"properties": {
				"data": {
					"$ref": "#/definitions/domain.EphemeralInvite"
				},
				"error": {
					"$ref": "#/definitions/helpers.APIError"
				}
			}
		},
		"controllers.MembershipSuccessResponse": {
			"type": "object",
			"properties": {
				"data": {
					"$ref": "#/definitions/domain.Membership"
				},
				"error": {
					"$ref": "#/definitions/helpers.APIError"
				}
			}
		},
		"controllers.InviteSuccessResponse": {
			"type": "object",
			"properties": {
				"data": {
					"$ref": "#/definitions/domain.Invite"
				},
				"error": {
					"$ref": "#/definitions/helpers.APIError"
				}
			}
		},
		"controllers.IssuedCodeSuccessResponse": {
			"type": "object",
			"properties": {
				"data": {
					"$ref": "#/definitions/domain.IssuedPersistentInvite"
				},
				"error": {
					"$ref": "#/definitions/helpers.APIError"
				}
			}
		},
		"controllers.PersistentInviteSuccessResponse": {
			"type": "object",
			"properties": {
				"data": {
					"$ref": "#/definitions/domain.PersistentInvite"
				},
				"error": {
					"$ref": "#/definitions/helpers.APIError"
				}
			}
		},
		"controllers.TeamSuccessResponse": {
			"type": "object",
			"properties": {
				"data": {
					"$ref": "#/definitions/controllers.TeamResponse"
				},
				"error": {
					"$ref": "#/definitions/helpers.APIError"
				}
			}
		},
		"controllers.PaymentEventSuccessResponse": {
			"type": "object",
			"properties": {
				"data": {
					"$ref": "#/definitions/controllers.PaymentEventResult"
				},
				"error": {
					"$ref": "#/definitions/helpers.APIError"
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "Type \"Bearer\" followed by a space and the identity token.",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PRO Roster API",
	Description:      "Team invites, reusable invite codes and seat allocation for PRO accounts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
