/*
Package cnapsdk is a client for the CNAP facility API.

Public endpoints hang off SDKClient:

	client := cnapsdk.NewSDKClient("https://cnap.example.org")
	health, err := client.GetReadiness(ctx)
	ack, err := client.ApprovePI(ctx, token)

Staff endpoints need a bearer token carrying the "staff" scope, usually
minted with cmd/cnap-token:

	session := client.NewStaffSession(token)
	product, err := session.CreateProduct(ctx, cnapsdk.ProductInput{
		Name:              "RNA-Seq",
		Quantity:          40,
		IsQuantityLimited: true,
		WorkflowPK:        3,
		UnitCostCents:     1000,
	})

Errors returned by the server are *APIError values and match the
predefined errors with errors.Is:

	if errors.Is(err, cnapsdk.ErrNotFound) {
		// ...
	}
*/
package cnapsdk
