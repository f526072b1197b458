// Package printing renders the balance sheet as a printable HTML page and
// converts it to PDF through a headless Chrome driven by chromedp.
//
// Example usage:
//
//	tmpl := NewBalanceSheetTemplate(WithLanguage(language.English))
//	html, err := tmpl.Render(snapshot)
//	if err != nil {
//	    return err
//	}
//
//	renderer, err := NewChromedpRenderer(&ChromedpConfig{RemoteURL: "ws://chrome:9222"})
//	if err != nil {
//	    return err
//	}
//	defer renderer.Close()
//
//	result, err := renderer.Render(ctx, &RenderRequest{HTML: html, Title: "Balance Sheet"})
package printing
