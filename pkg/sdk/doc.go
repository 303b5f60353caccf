// Package sdk provides a Go client for the searchd HTTP API.
//
//	client, _ := sdk.New("http://localhost:8080", sdk.WithAPIKey("secret"))
//	page, _ := client.Search(ctx, "orders", "acme 2024",
//	    sdk.Fields("customer_name", "order_date"),
//	    sdk.Match(sdk.MatchPhrase),
//	    sdk.Filter("status", "open"),
//	    sdk.Limit(20),
//	)
//	for _, item := range page.Items {
//	    fmt.Println(item["id"], item["customer_name"])
//	}
//
// Errors returned by the API unwrap to the package sentinels, so callers
// can branch with errors.Is(err, sdk.ErrEntityNotFound).
package sdk
