package provider

import (
	"context"
	"testing"

	"github.com/ankek/terraform-provider-taskchart/internal/renderer"
	"github.com/hashicorp/terraform-plugin-framework/attr"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/provider"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

func TestProviderMetadataAndSchema(t *testing.T) {
	ctx := context.Background()
	p := New("test")()

	var meta provider.MetadataResponse
	p.Metadata(ctx, provider.MetadataRequest{}, &meta)
	if meta.TypeName != "taskchart" || meta.Version != "test" {
		t.Errorf("metadata = %+v", meta)
	}

	var schemaResp provider.SchemaResponse
	p.Schema(ctx, provider.SchemaRequest{}, &schemaResp)
	token, ok := schemaResp.Schema.Attributes["results_token"]
	if !ok || !token.IsSensitive() {
		t.Error("results_token should be a sensitive attribute")
	}

	if n := len(p.Resources(ctx)); n != 1 {
		t.Errorf("got %d resources, want 1", n)
	}
	if n := len(p.DataSources(ctx)); n != 1 {
		t.Errorf("got %d data sources, want 1", n)
	}
}

func TestTypeNames(t *testing.T) {
	ctx := context.Background()

	var rm resource.MetadataResponse
	NewDashboardResource().Metadata(ctx, resource.MetadataRequest{ProviderTypeName: "taskchart"}, &rm)
	if rm.TypeName != "taskchart_dashboard" {
		t.Errorf("resource type = %q", rm.TypeName)
	}

	var dm datasource.MetadataResponse
	NewWidgetDataSource().Metadata(ctx, datasource.MetadataRequest{ProviderTypeName: "taskchart"}, &dm)
	if dm.TypeName != "taskchart_widget" {
		t.Errorf("data source type = %q", dm.TypeName)
	}
}

func TestSchemasAreValid(t *testing.T) {
	ctx := context.Background()

	var rs resource.SchemaResponse
	NewDashboardResource().Schema(ctx, resource.SchemaRequest{}, &rs)
	if diags := rs.Schema.ValidateImplementation(ctx); diags.HasError() {
		t.Errorf("resource schema: %v", diags)
	}

	var ds datasource.SchemaResponse
	NewWidgetDataSource().Schema(ctx, datasource.SchemaRequest{}, &ds)
	if diags := ds.Schema.ValidateImplementation(ctx); diags.HasError() {
		t.Errorf("data source schema: %v", diags)
	}
	for _, name := range []string{"kind", "data_path", "data_url", "data_json", "text", "source", "html", "status", "view", "output", "iteration"} {
		if _, ok := ds.Schema.Attributes[name]; !ok {
			t.Errorf("data source schema missing %q", name)
		}
	}
}

func TestConfigureRejectsWrongProviderData(t *testing.T) {
	r := &DashboardResource{}
	var resp resource.ConfigureResponse
	r.Configure(context.Background(), resource.ConfigureRequest{ProviderData: "nope"}, &resp)
	if !resp.Diagnostics.HasError() {
		t.Error("expected configure error for wrong provider data")
	}

	d := &WidgetDataSource{}
	var dresp datasource.ConfigureResponse
	d.Configure(context.Background(), datasource.ConfigureRequest{ProviderData: &ProviderData{Token: "t"}}, &dresp)
	if dresp.Diagnostics.HasError() || d.generator == nil {
		t.Errorf("configure failed: %v", dresp.Diagnostics)
	}
}

func TestWidgetModelConfig(t *testing.T) {
	ctx := context.Background()
	m := WidgetDataSourceModel{
		WidgetID:    types.StringValue("durations"),
		Kind:        types.StringValue("Lines"),
		NameX:       types.StringValue("Iteration"),
		RotateX:     types.Float64Value(-45),
		FormatDateX: types.StringValue("%H:%M"),
		Guide:       types.BoolValue(true),
		View:        types.Int64Value(2),
		DataJSON:    types.StringValue("[]"),
		Text:        types.ListNull(types.StringType),
	}

	w, err := m.widgetConfig(ctx)
	if err != nil {
		t.Fatalf("widgetConfig() error = %v", err)
	}
	want := renderer.Attributes{
		Widget:      renderer.KindLines,
		NameX:       "Iteration",
		RotateX:     -45,
		FormatDateX: "%H:%M",
		Guide:       true,
		View:        2,
	}
	if w.Attributes != want {
		t.Errorf("attributes = %+v, want %+v", w.Attributes, want)
	}
	if w.ID != "durations" || w.DataJSON != "[]" || w.Text != nil {
		t.Errorf("config = %+v", w)
	}
}

func TestWidgetModelText(t *testing.T) {
	m := WidgetDataSourceModel{
		Kind: types.StringValue("TextArea"),
		Text: types.ListValueMust(types.StringType, []attr.Value{types.StringValue("a"), types.StringValue("b")}),
	}
	w, err := m.widgetConfig(context.Background())
	if err != nil {
		t.Fatalf("widgetConfig() error = %v", err)
	}
	if w.ID != DefaultWidgetID || len(w.Text) != 2 || w.Text[1] != "b" {
		t.Errorf("config = %+v", w)
	}
}

func TestWidgetModelOutputSelection(t *testing.T) {
	m := WidgetDataSourceModel{
		Kind:      types.StringValue("TextArea"),
		Source:    types.StringValue("complete_output"),
		DataPath:  types.StringValue("workload.json"),
		Output:    types.Int64Value(2),
		Iteration: types.Int64Value(5),
		Text:      types.ListNull(types.StringType),
	}
	w, err := m.widgetConfig(context.Background())
	if err != nil {
		t.Fatalf("widgetConfig() error = %v", err)
	}
	if w.Source != "complete_output" || w.OutputIndex != 2 || w.Iteration != 5 {
		t.Errorf("config = %+v", w)
	}
}

func TestWidgetModelRejectsUnknownKind(t *testing.T) {
	m := WidgetDataSourceModel{Kind: types.StringValue("Bogus")}
	if _, err := m.widgetConfig(context.Background()); err == nil {
		t.Error("expected error for unknown kind")
	}
}
