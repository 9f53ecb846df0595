// Package pantry provides an embedded Go client for the pantry grocery
// recommendation engine. It wires the same storage, index, and selection
// services the HTTP server uses, minus the network boundary, so batch
// jobs and tools can ingest a catalog and generate grocery lists in
// process.
//
//	client, _ := pantry.New(ctx,
//	    pantry.WithDatabase("pantry.db"),
//	    pantry.WithEmbedder(emb),
//	)
//	defer client.Close()
//
//	_ = client.PutItem(ctx, pantry.Item{Name: "Oat Milk", Store: "Whole Foods", Price: 4.29})
//	_ = client.RefreshIndex(ctx)
//
//	list, _ := client.GenerateGroceryList(ctx, pantry.ListRequest{
//	    Owner:  "local",
//	    Budget: 40,
//	    Items:  []string{"milk", "bananas"},
//	    Diet:   "vegan",
//	})
package pantry
