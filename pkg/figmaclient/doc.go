/*
Package figmaclient provides the main entry point for creating Figma API clients.

	client, err := figmaclient.New(ctx, &figma.Config{
		APIToken: os.Getenv("FIGMA_API_TOKEN"),
	})
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

New normalises the base URL, resolves the credential and returns a
*figma.ConfigurationError when the client cannot be built. See package figma
for the client interface and configuration options.
*/
package figmaclient
