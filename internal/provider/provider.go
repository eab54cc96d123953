package provider

import (
	"context"
	"os"

	"github.com/ankek/terraform-provider-taskchart/internal/parser"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/provider"
	"github.com/hashicorp/terraform-plugin-framework/provider/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Ensure TaskchartProvider satisfies various provider interfaces.
var _ provider.Provider = &TaskchartProvider{}

// TaskchartProvider defines the provider implementation.
type TaskchartProvider struct {
	// version is set to the provider version on release, "dev" when the
	// provider is built and ran locally, and "test" when running acceptance
	// testing.
	version string
}

// TaskchartProviderModel describes the provider data model.
type TaskchartProviderModel struct {
	ResultsToken types.String `tfsdk:"results_token"`
}

// ProviderData is handed to resources and data sources on Configure.
type ProviderData struct {
	Token  string
	Logger hclog.Logger
}

func (p *TaskchartProvider) Metadata(ctx context.Context, req provider.MetadataRequest, resp *provider.MetadataResponse) {
	resp.TypeName = "taskchart"
	resp.Version = p.version
}

func (p *TaskchartProvider) Schema(ctx context.Context, req provider.SchemaRequest, resp *provider.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: "The Taskchart provider renders task result charts, tables and text widgets into standalone HTML dashboards.",
		Attributes: map[string]schema.Attribute{
			"results_token": schema.StringAttribute{
				Description: "Bearer token sent when widget data is fetched from a URL. Can also be set via the " + parser.TokenEnvVar + " environment variable.",
				Optional:    true,
				Sensitive:   true,
			},
		},
	}
}

func (p *TaskchartProvider) Configure(ctx context.Context, req provider.ConfigureRequest, resp *provider.ConfigureResponse) {
	var data TaskchartProviderModel

	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)

	if resp.Diagnostics.HasError() {
		return
	}

	token := os.Getenv(parser.TokenEnvVar)
	if !data.ResultsToken.IsNull() && data.ResultsToken.ValueString() != "" {
		token = data.ResultsToken.ValueString()
	}
	if token != "" {
		ctx = tflog.MaskAllFieldValuesStrings(ctx, token)
	}
	tflog.Debug(ctx, "configured taskchart provider", map[string]interface{}{
		"token_set": token != "",
	})

	pd := &ProviderData{Token: token, Logger: NewLogger()}
	resp.DataSourceData = pd
	resp.ResourceData = pd
}

func (p *TaskchartProvider) Resources(ctx context.Context) []func() resource.Resource {
	return []func() resource.Resource{
		NewDashboardResource,
	}
}

func (p *TaskchartProvider) DataSources(ctx context.Context) []func() datasource.DataSource {
	return []func() datasource.DataSource{
		NewWidgetDataSource,
	}
}

func New(version string) func() provider.Provider {
	return func() provider.Provider {
		return &TaskchartProvider{
			version: version,
		}
	}
}
